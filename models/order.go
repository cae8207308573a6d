package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentTamara            = "Tamara"
	PaymentTabby             = "Tabby"
	PaymentCustomInstallment = "CustomInstallment"
	PaymentCash              = "Cash"
)

// Delivery methods.
const (
	DeliverySMSA       = "SMSA"
	DeliveryAramex     = "Aramex"
	DeliverySitePickup = "SitePickup"
)

// OrderStatusPending is the status every new order starts in.
const OrderStatusPending = "Pending"

// LineItem is one ordered product with its quantity.
type LineItem struct {
	ProductID string `bson:"product_id" json:"product_id" binding:"required"`
	Quantity  int    `bson:"quantity" json:"quantity" binding:"required,min=1"`
}

// Order is the live order document in the Orders collection. Only the
// Status field is mutated after creation, and only by an admin.
type Order struct {
	ID             string     `bson:"_id" json:"id"`
	UserID         string     `bson:"user_id" json:"user_id"`
	Products       []LineItem `bson:"products" json:"products"`
	TotalPrice     float64    `bson:"total_price" json:"total_price"`
	PaymentMethod  string     `bson:"payment_method" json:"payment_method"`
	DeliveryMethod string     `bson:"delivery_method" json:"delivery_method"`
	Status         string     `bson:"status" json:"status"`
	PaymentID      string     `bson:"payment_id" json:"payment_id"`
	TrackingNumber string     `bson:"tracking_number" json:"tracking_number"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}

// OrderSnapshot is the denormalized copy of an order embedded in the
// owning user's purchase history. It is a point-in-time value: admin
// status updates on the live Order never propagate to snapshots.
type OrderSnapshot Order

// Snapshot returns the denormalized copy appended to purchase history.
func (o Order) Snapshot() OrderSnapshot {
	snap := OrderSnapshot(o)
	snap.Products = append([]LineItem(nil), o.Products...)
	return snap
}
