package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
)

type EnquiryRepository struct {
	collection *mongo.Collection
}

func NewEnquiryRepository(db *mongo.Database) *EnquiryRepository {
	return &EnquiryRepository{
		collection: db.Collection("enquiries"),
	}
}

// GetByID loads one enquiry; returns mongo.ErrNoDocuments when absent
func (r *EnquiryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&enquiry)
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) (primitive.ObjectID, error) {
	now := time.Now()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// UpdateByID applies a $set update to one enquiry
func (r *EnquiryRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": setWithTimestamp(fields)})
	return err
}

// ReplaceStages overwrites the enquiry's full ordered stage array. There
// is no partial stage update; callers read-modify-write the whole list.
func (r *EnquiryRepository) ReplaceStages(ctx context.Context, id primitive.ObjectID, stages []models.StageInstance) error {
	return r.UpdateByID(ctx, id, bson.M{"enquiry_stages": stages})
}
