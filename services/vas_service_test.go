package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
)

// memAdmissionStore is an in-memory admissionStore for driving the
// services without a database
type memAdmissionStore struct {
	record      *models.AdmissionRecord
	sets        []bson.M
	unsets      []bson.M
	claims      int
	claimDenied bool
	resets      int
}

func (m *memAdmissionStore) GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error) {
	if m.record == nil {
		return nil, mongo.ErrNoDocuments
	}
	return m.record, nil
}

func (m *memAdmissionStore) GetByEnrolmentNumber(ctx context.Context, enrolmentNumber string) (*models.AdmissionRecord, error) {
	return nil, mongo.ErrNoDocuments
}

func (m *memAdmissionStore) GetOrCreateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error) {
	if m.record == nil {
		m.record = &models.AdmissionRecord{
			EnquiryID:               enquiryID,
			AdmissionApprovalStatus: models.ApprovalStatusPending,
		}
	}
	return m.record, nil
}

func (m *memAdmissionStore) UpdateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M, upsert bool) error {
	m.sets = append(m.sets, fields)
	return nil
}

func (m *memAdmissionStore) UnsetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M) error {
	m.unsets = append(m.unsets, fields)
	return nil
}

func (m *memAdmissionStore) MarkFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) (bool, error) {
	m.claims++
	if m.claimDenied || m.record == nil || m.record.AdmissionFeeRequestTriggered {
		return false, nil
	}
	m.record.AdmissionFeeRequestTriggered = true
	return true, nil
}

func (m *memAdmissionStore) ResetFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) error {
	m.resets++
	if m.record != nil {
		m.record.AdmissionFeeRequestTriggered = false
	}
	return nil
}

// memEnquiryLogStore is the enquiryLogStore counterpart
type memEnquiryLogStore struct {
	entries []models.EnquiryLogEntry
}

func (m *memEnquiryLogStore) GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) ([]models.EnquiryLogEntry, error) {
	return m.entries, nil
}

func (m *memEnquiryLogStore) FindByEvent(ctx context.Context, enquiryID primitive.ObjectID, event string) (*models.EnquiryLogEntry, error) {
	for i := range m.entries {
		if m.entries[i].Event == event {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memEnquiryLogStore) CreateLog(ctx context.Context, entry *models.EnquiryLogEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memEnquiryLogStore) UpdateLog(ctx context.Context, id primitive.ObjectID, logData bson.M) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].LogData = logData
			return nil
		}
	}
	return nil
}

func (m *memEnquiryLogStore) DeleteLog(ctx context.Context, id primitive.ObjectID) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func vasAddedEntry(enquiryID primitive.ObjectID, vasTypes []string) models.EnquiryLogEntry {
	return models.EnquiryLogEntry{
		ID:        primitive.NewObjectID(),
		EnquiryID: enquiryID,
		EventType: models.EventTypeVas,
		Event:     models.EventVasAdded,
		LogData:   bson.M{"VAS_services": vasTypes},
	}
}

func TestAddVasOptionCreatesLogEntry(t *testing.T) {
	admissions := &memAdmissionStore{}
	logs := &memEnquiryLogStore{}
	svc := &VasService{admissions: admissions, enquiryLogs: logs}

	enquiryID := primitive.NewObjectID()
	err := svc.AddVasOption(context.Background(), enquiryID, models.VasTransport, &models.VasDetail{}, "Front Desk", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if admissions.record == nil {
		t.Fatal("expected the admission record to be lazily created")
	}
	if len(admissions.sets) != 1 || admissions.sets[0]["opted_for_transport"] != true {
		t.Fatalf("expected one $set flipping opted_for_transport, got %v", admissions.sets)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.Event != models.EventVasAdded {
		t.Fatalf("expected event %q, got %q", models.EventVasAdded, entry.Event)
	}
	if got := entry.VasServices(); len(got) != 1 || got[0] != models.VasTransport {
		t.Fatalf("expected VAS_services [transport], got %v", got)
	}
}

func TestAddVasOptionRewritesExistingEntry(t *testing.T) {
	enquiryID := primitive.NewObjectID()
	admissions := &memAdmissionStore{record: &models.AdmissionRecord{EnquiryID: enquiryID}}
	logs := &memEnquiryLogStore{entries: []models.EnquiryLogEntry{
		vasAddedEntry(enquiryID, []string{models.VasTransport}),
	}}
	svc := &VasService{admissions: admissions, enquiryLogs: logs}

	err := svc.AddVasOption(context.Background(), enquiryID, models.VasPSA, &models.VasDetail{}, "Front Desk", "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs.entries) != 1 {
		t.Fatalf("expected the single entry to be rewritten, got %d entries", len(logs.entries))
	}
	if got := logs.entries[0].VasServices(); len(got) != 1 || got[0] != models.VasPSA {
		t.Fatalf("expected VAS_services rewritten to [psa], got %v", got)
	}
}

func TestAddVasOptionRejectsBadInput(t *testing.T) {
	svc := &VasService{admissions: &memAdmissionStore{}, enquiryLogs: &memEnquiryLogStore{}}

	err := svc.AddVasOption(context.Background(), primitive.NewObjectID(), "spa", &models.VasDetail{}, "", "")
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for unknown type, got %v", err)
	}

	err = svc.AddVasOption(context.Background(), primitive.NewObjectID(), models.VasPSA, nil, "", "")
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for missing details, got %v", err)
	}
}

func TestRemoveVasOptionSplicesLogEntry(t *testing.T) {
	enquiryID := primitive.NewObjectID()
	record := &models.AdmissionRecord{EnquiryID: enquiryID}
	record.SetVas(models.VasTransport, &models.VasDetail{})
	record.SetVas(models.VasPSA, &models.VasDetail{})

	admissions := &memAdmissionStore{record: record}
	logs := &memEnquiryLogStore{entries: []models.EnquiryLogEntry{
		vasAddedEntry(enquiryID, []string{models.VasTransport, models.VasPSA}),
	}}
	svc := &VasService{admissions: admissions, enquiryLogs: logs}

	if err := svc.RemoveVasOption(context.Background(), enquiryID, models.VasTransport); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(admissions.sets) != 1 || admissions.sets[0]["opted_for_transport"] != false {
		t.Fatalf("expected the flag cleared, got %v", admissions.sets)
	}
	if len(admissions.unsets) != 1 {
		t.Fatalf("expected the detail slot unset, got %v", admissions.unsets)
	}
	if _, ok := admissions.unsets[0]["transport_details"]; !ok {
		t.Fatalf("expected transport_details in the $unset, got %v", admissions.unsets[0])
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected the entry kept, got %d entries", len(logs.entries))
	}
	if got := logs.entries[0].VasServices(); len(got) != 1 || got[0] != models.VasPSA {
		t.Fatalf("expected VAS_services spliced to [psa], got %v", got)
	}
}

func TestRemoveVasOptionDeletesSoleEntry(t *testing.T) {
	enquiryID := primitive.NewObjectID()
	record := &models.AdmissionRecord{EnquiryID: enquiryID}
	record.SetVas(models.VasPSA, &models.VasDetail{})

	admissions := &memAdmissionStore{record: record}
	logs := &memEnquiryLogStore{entries: []models.EnquiryLogEntry{
		vasAddedEntry(enquiryID, []string{models.VasPSA}),
	}}
	svc := &VasService{admissions: admissions, enquiryLogs: logs}

	if err := svc.RemoveVasOption(context.Background(), enquiryID, models.VasPSA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs.entries) != 0 {
		t.Fatalf("expected the sole-element entry deleted, got %v", logs.entries)
	}
}

func TestRemoveVasOptionAbsentTypeLeavesEntryUntouched(t *testing.T) {
	enquiryID := primitive.NewObjectID()
	admissions := &memAdmissionStore{record: &models.AdmissionRecord{EnquiryID: enquiryID}}
	logs := &memEnquiryLogStore{entries: []models.EnquiryLogEntry{
		vasAddedEntry(enquiryID, []string{models.VasTransport}),
	}}
	svc := &VasService{admissions: admissions, enquiryLogs: logs}

	if err := svc.RemoveVasOption(context.Background(), enquiryID, models.VasCafeteria); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := logs.entries[0].VasServices(); len(got) != 1 || got[0] != models.VasTransport {
		t.Fatalf("expected the entry left untouched, got %v", got)
	}
}

func TestRemoveVasOptionWithoutRecord(t *testing.T) {
	svc := &VasService{admissions: &memAdmissionStore{}, enquiryLogs: &memEnquiryLogStore{}}

	err := svc.RemoveVasOption(context.Background(), primitive.NewObjectID(), models.VasTransport)
	if !errors.Is(err, ErrAdmissionNotFound) {
		t.Fatalf("expected ErrAdmissionNotFound, got %v", err)
	}
}
