package repository

import (
	"context"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type OfferRepository struct {
	collection *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{collection: db.Collection("Offers")}
}

func (r *OfferRepository) Insert(ctx context.Context, offer *models.Offer) error {
	_, err := r.collection.InsertOne(ctx, offer)
	return err
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]models.Offer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}
