package models

import "time"

// Product is a spare-part document in the Products collection.
// TrendingScore is a monotonic counter incremented by ordered quantity;
// it drives the trending listing and is never decremented by reads.
type Product struct {
	ID             string                 `bson:"_id" json:"id"`
	Name           string                 `bson:"name" json:"name"`
	Description    string                 `bson:"description" json:"description"`
	Price          float64                `bson:"price" json:"price"`
	Stock          int                    `bson:"stock" json:"stock"`
	Category       string                 `bson:"category" json:"category"`
	Brand          string                 `bson:"brand" json:"brand"`
	Specifications map[string]interface{} `bson:"specifications" json:"specifications"`
	ImageURL       string                 `bson:"image_url,omitempty" json:"image_url,omitempty"`
	TrendingScore  int                    `bson:"trending_score" json:"trending_score"`
	Available      bool                   `bson:"-" json:"available"`
	CreatedAt      time.Time              `bson:"created_at" json:"created_at"`
}
