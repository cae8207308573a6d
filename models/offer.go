package models

import "time"

// Offer is a promotional discount on a product.
type Offer struct {
	ID          string    `bson:"_id" json:"id"`
	ProductID   string    `bson:"product_id" json:"product_id"`
	Discount    float64   `bson:"discount" json:"discount"`
	Description string    `bson:"description" json:"description"`
	StartDate   string    `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string    `bson:"end_date,omitempty" json:"end_date,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
