package repository

import (
	"context"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type FeedbackRepository struct {
	collection *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{collection: db.Collection("Feedback")}
}

func (r *FeedbackRepository) Insert(ctx context.Context, feedback *models.Feedback) error {
	_, err := r.collection.InsertOne(ctx, feedback)
	return err
}
