package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolpath/admissions_backend/models"
)

type AdmissionRepository struct {
	collection *mongo.Collection
}

func NewAdmissionRepository(db *mongo.Database) *AdmissionRepository {
	return &AdmissionRepository{
		collection: db.Collection("admissions"),
	}
}

// GetByEnquiryID loads the 1:1 admission record of an enquiry; returns
// mongo.ErrNoDocuments when none exists yet
func (r *AdmissionRepository) GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error) {
	var record models.AdmissionRecord
	err := r.collection.FindOne(ctx, bson.M{"enquiry_id": enquiryID}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByEnrolmentNumber resolves a previously admitted student's record by
// enrolment number, used for IVT/Readmission student-id lookups
func (r *AdmissionRepository) GetByEnrolmentNumber(ctx context.Context, enrolmentNumber string) (*models.AdmissionRecord, error) {
	var record models.AdmissionRecord
	err := r.collection.FindOne(ctx, bson.M{"enrolment_number": enrolmentNumber}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AdmissionRepository) Create(ctx context.Context, record *models.AdmissionRecord) (primitive.ObjectID, error) {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// GetOrCreateByEnquiryID returns the enquiry's admission record, creating
// an empty one when none exists ("upsert on demand"). The unique index on
// enquiry_id makes the create race-safe: the loser of a concurrent create
// re-reads the winner's document.
func (r *AdmissionRepository) GetOrCreateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error) {
	record, err := r.GetByEnquiryID(ctx, enquiryID)
	if err == nil {
		return record, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	fresh := &models.AdmissionRecord{
		EnquiryID:               enquiryID,
		AdmissionApprovalStatus: models.ApprovalStatusPending,
	}
	if _, err := r.Create(ctx, fresh); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetByEnquiryID(ctx, enquiryID)
		}
		return nil, err
	}
	return r.GetByEnquiryID(ctx, enquiryID)
}

// setWithTimestamp copies fields into a fresh $set document stamped with
// updated_at, leaving the caller's map untouched
func setWithTimestamp(fields bson.M) bson.M {
	set := bson.M{"updated_at": time.Now()}
	for field, value := range fields {
		set[field] = value
	}
	return set
}

// UpdateByEnquiryID applies a $set update; upsert controls lazy creation
func (r *AdmissionRepository) UpdateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M, upsert bool) error {
	update := bson.M{"$set": setWithTimestamp(fields)}
	if upsert {
		update["$setOnInsert"] = bson.M{"created_at": time.Now()}
	}
	opts := options.Update().SetUpsert(upsert)
	_, err := r.collection.UpdateOne(ctx, bson.M{"enquiry_id": enquiryID}, update, opts)
	return err
}

// UnsetByEnquiryID removes fields from the record
func (r *AdmissionRepository) UnsetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M) error {
	update := bson.M{
		"$unset": fields,
		"$set":   bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"enquiry_id": enquiryID}, update)
	return err
}

// MarkFeeRequestTriggered atomically claims the idempotency flag. The
// filter only matches while the flag is false, so exactly one of any set
// of concurrent callers observes claimed==true.
func (r *AdmissionRepository) MarkFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"enquiry_id": enquiryID, "admission_fee_request_triggered": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"admission_fee_request_triggered": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// ResetFeeRequestTriggered rolls the flag back after a failed Finance
// call so a later retry can re-send
func (r *AdmissionRepository) ResetFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"enquiry_id": enquiryID},
		bson.M{"$set": bson.M{"admission_fee_request_triggered": false, "updated_at": time.Now()}},
	)
	return err
}
