package repositories

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSetWithTimestampLeavesCallerMapUntouched(t *testing.T) {
	fields := bson.M{"opted_for_transport": true}

	set := setWithTimestamp(fields)

	if _, ok := fields["updated_at"]; ok {
		t.Fatal("caller map gained an updated_at key")
	}
	if len(fields) != 1 {
		t.Fatalf("caller map grew to %d entries", len(fields))
	}
	if set["opted_for_transport"] != true {
		t.Fatalf("expected field to be copied, got %v", set)
	}
	if _, ok := set["updated_at"]; !ok {
		t.Fatal("expected updated_at stamp in the $set document")
	}
}
