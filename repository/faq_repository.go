package repository

import (
	"context"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The original deployment keeps FAQs in a collection named
// CustomerSupport.
type FAQRepository struct {
	collection *mongo.Collection
}

func NewFAQRepository(db *mongo.Database) *FAQRepository {
	return &FAQRepository{collection: db.Collection("CustomerSupport")}
}

func (r *FAQRepository) Insert(ctx context.Context, faq *models.FAQ) error {
	_, err := r.collection.InsertOne(ctx, faq)
	return err
}

func (r *FAQRepository) FindAll(ctx context.Context) ([]models.FAQ, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	faqs := []models.FAQ{}
	if err = cursor.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}
