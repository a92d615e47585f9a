package models

import "testing"

func TestSetVasKeepsFlagAndDetailsInSync(t *testing.T) {
	record := &AdmissionRecord{}

	for _, vasType := range VasOrder {
		if !record.SetVas(vasType, &VasDetail{}) {
			t.Fatalf("SetVas rejected known type %q", vasType)
		}
		if !record.OptedFor(vasType) || record.DetailsFor(vasType) == nil {
			t.Fatalf("flag and details out of sync after SetVas(%q)", vasType)
		}

		if !record.ClearVas(vasType) {
			t.Fatalf("ClearVas rejected known type %q", vasType)
		}
		if record.OptedFor(vasType) || record.DetailsFor(vasType) != nil {
			t.Fatalf("flag and details out of sync after ClearVas(%q)", vasType)
		}
	}

	if record.SetVas("spa", &VasDetail{}) {
		t.Fatal("SetVas accepted an unknown type")
	}
}

func TestToDetailsViewDerivesBooleansFromDetailPresence(t *testing.T) {
	// Stored flags deliberately contradict the detail slots; the view must
	// trust the slots
	record := &AdmissionRecord{
		OptedForTransport: true,
		TransportDetails:  nil,
		OptedForCafeteria: false,
		CafeteriaDetails:  &VasDetail{},
	}

	view := record.ToDetailsView()
	if view.OptedForTransport {
		t.Fatal("expected transport boolean derived false from nil details")
	}
	if !view.OptedForCafeteria {
		t.Fatal("expected cafeteria boolean derived true from present details")
	}
}

func TestVasFieldNames(t *testing.T) {
	flag, detail, ok := VasFieldNames(VasKidsClub)
	if !ok {
		t.Fatal("expected kids_club to be a known type")
	}
	if flag != "opted_for_kids_club" || detail != "kids_club_details" {
		t.Fatalf("unexpected field names %q, %q", flag, detail)
	}

	if _, _, ok := VasFieldNames("spa"); ok {
		t.Fatal("expected unknown type rejected")
	}
}
