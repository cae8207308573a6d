package models

import "time"

// CartItem is a denormalized product entry embedded in a user's cart or
// favorites. Name, price and image are copied from the product at the
// time of insertion and do not follow later catalog edits.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	ImageURL  string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// User is a document in the Users collection. PurchaseHistory is
// append-only from the user's perspective.
type User struct {
	ID              string          `bson:"_id" json:"id"`
	Email           string          `bson:"email" json:"email"`
	Username        string          `bson:"username" json:"username"`
	PhoneNumber     string          `bson:"phoneNumber" json:"phoneNumber"`
	HashedPassword  string          `bson:"hashed_password" json:"-"`
	IsActive        bool            `bson:"is_active" json:"is_active"`
	IsSuperuser     bool            `bson:"is_superuser" json:"is_superuser"`
	Subscription    bool            `bson:"subscription" json:"subscription"`
	PurchaseHistory []OrderSnapshot `bson:"purchase_history" json:"purchase_history"`
	Cart            []CartItem      `bson:"cart" json:"cart"`
	Favorites       []CartItem      `bson:"favorites" json:"favorites"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
}
