package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVasServicesToleratesDecodedShapes(t *testing.T) {
	cases := []struct {
		name    string
		logData bson.M
		want    int
	}{
		{"string slice", bson.M{"VAS_services": []string{"transport", "psa"}}, 2},
		{"interface slice", bson.M{"VAS_services": []interface{}{"transport"}}, 1},
		{"primitive.A", bson.M{"VAS_services": primitive.A{"cafeteria", "psa"}}, 2},
		{"missing key", bson.M{}, 0},
		{"nil log data", nil, 0},
	}

	for _, tc := range cases {
		entry := &EnquiryLogEntry{LogData: tc.logData}
		got := entry.VasServices()
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d services, got %v", tc.name, tc.want, got)
		}
	}
}
