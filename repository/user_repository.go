package repository

import (
	"context"
	"errors"

	"github.com/heavymachinery/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("Users")}
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"phoneNumber": phone})
}

func (r *UserRepository) FindByPasswordHash(ctx context.Context, hash string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"hashed_password": hash})
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// AppendPurchase pushes an order snapshot onto the user's purchase
// history. Snapshots are append-only; nothing ever rewrites them.
func (r *UserRepository) AppendPurchase(ctx context.Context, userID string, snapshot models.OrderSnapshot) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"purchase_history": snapshot}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetCart(ctx context.Context, userID string, cart []models.CartItem) error {
	return r.setField(ctx, userID, "cart", cart)
}

func (r *UserRepository) SetFavorites(ctx context.Context, userID string, favorites []models.CartItem) error {
	return r.setField(ctx, userID, "favorites", favorites)
}

func (r *UserRepository) SetSubscription(ctx context.Context, userID string, subscribed bool) error {
	return r.setField(ctx, userID, "subscription", subscribed)
}

func (r *UserRepository) setField(ctx context.Context, userID, field string, value interface{}) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindLoyal returns users whose purchase history holds at least
// minPurchases snapshots.
func (r *UserRepository) FindLoyal(ctx context.Context, minPurchases int) ([]models.User, error) {
	filter := bson.M{"$expr": bson.M{"$gte": bson.A{
		bson.M{"$size": bson.M{"$ifNull": bson.A{"$purchase_history", bson.A{}}}},
		minPurchases,
	}}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
