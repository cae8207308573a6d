package repository

import (
	"context"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{collection: db.Collection("ChatHistory")}
}

func (r *ChatRepository) Insert(ctx context.Context, record *models.ChatRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *ChatRepository) FindByUserID(ctx context.Context, userID string) ([]models.ChatRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ChatRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
