package repository

import (
	"context"
	"errors"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("Products")}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search runs a case-insensitive regex over name, description and brand.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	filter := bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": query, "$options": "i"}},
		{"description": bson.M{"$regex": query, "$options": "i"}},
		{"brand": bson.M{"$regex": query, "$options": "i"}},
	}}
	return r.Find(ctx, filter, nil)
}

// TopTrending returns the highest trending_score products, capped at limit.
func (r *ProductRepository) TopTrending(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "trending_score", Value: -1}}).
		SetLimit(limit)
	return r.Find(ctx, bson.M{}, opts)
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepository) Update(ctx context.Context, id string, updates bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock applies a single conditional update: the filter only
// matches while stock >= qty, so stock can never go negative even under
// concurrent orders for the same product. The same update bumps
// trending_score by the ordered quantity.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	filter := bson.M{"_id": id, "stock": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"stock": -qty, "trending_score": qty}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing product from one that exists with too
		// little stock.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock compensates an earlier DecrementStock when a later line
// item in the same order fails, undoing both counters.
func (r *ProductRepository) RestoreStock(ctx context.Context, id string, qty int) error {
	update := bson.M{"$inc": bson.M{"stock": qty, "trending_score": -qty}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// InventoryReport returns name and stock for every product, ordered by name.
func (r *ProductRepository) InventoryReport(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "stock": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	return r.Find(ctx, bson.M{}, opts)
}
