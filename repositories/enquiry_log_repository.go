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

type EnquiryLogRepository struct {
	collection *mongo.Collection
}

func NewEnquiryLogRepository(db *mongo.Database) *EnquiryLogRepository {
	return &EnquiryLogRepository{
		collection: db.Collection("enquiry_logs"),
	}
}

// GetByEnquiryID returns every log entry of the enquiry, oldest first
func (r *EnquiryLogRepository) GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) ([]models.EnquiryLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"enquiry_id": enquiryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.EnquiryLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByEvent returns the enquiry's entry for one event, or
// mongo.ErrNoDocuments
func (r *EnquiryLogRepository) FindByEvent(ctx context.Context, enquiryID primitive.ObjectID, event string) (*models.EnquiryLogEntry, error) {
	var entry models.EnquiryLogEntry
	err := r.collection.FindOne(ctx, bson.M{"enquiry_id": enquiryID, "event": event}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *EnquiryLogRepository) CreateLog(ctx context.Context, entry *models.EnquiryLogEntry) error {
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// UpdateLog rewrites log_data of an existing entry in place
func (r *EnquiryLogRepository) UpdateLog(ctx context.Context, id primitive.ObjectID, logData bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"log_data": logData}})
	return err
}

func (r *EnquiryLogRepository) DeleteLog(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
