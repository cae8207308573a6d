package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"go.uber.org/zap"
)

// ProductStock is the slice of the product repository the order engine
// depends on.
type ProductStock interface {
	DecrementStock(ctx context.Context, id string, qty int) error
	RestoreStock(ctx context.Context, id string, qty int) error
}

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
}

// PurchaseHistoryStore appends order snapshots to the owning user.
type PurchaseHistoryStore interface {
	AppendPurchase(ctx context.Context, userID string, snapshot models.OrderSnapshot) error
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	UserID         string            `json:"user_id" binding:"required"`
	Products       []models.LineItem `json:"products" binding:"required,dive"`
	TotalPrice     float64           `json:"total_price" binding:"required"`
	PaymentMethod  string            `json:"payment_method" binding:"required,oneof=Tamara Tabby CustomInstallment Cash"`
	DeliveryMethod string            `json:"delivery_method" binding:"required,oneof=SMSA Aramex SitePickup"`
}

// OrderService is the inventory/order engine: it is the only place where
// multiple writes (stock, order, purchase history) must stay consistent.
type OrderService struct {
	products  ProductStock
	orders    OrderStore
	users     PurchaseHistoryStore
	payments  *PaymentProcessor
	shipments *ShipmentCreator
}

func NewOrderService(products ProductStock, orders OrderStore, users PurchaseHistoryStore, payments *PaymentProcessor, shipments *ShipmentCreator) *OrderService {
	return &OrderService{
		products:  products,
		orders:    orders,
		users:     users,
		payments:  payments,
		shipments: shipments,
	}
}

// CreateOrder validates and applies the whole order, or none of it.
// Stock is taken per line item with a conditional decrement that cannot
// go below zero; when a later item fails, the decrements already applied
// in this request are compensated before the error is returned, so two
// concurrent orders for the last unit resolve with exactly one winner.
func (s *OrderService) CreateOrder(ctx context.Context, callerID string, req *CreateOrderRequest) (*models.Order, *ServiceError) {
	if req.UserID != callerID {
		return nil, forbidden("Not authorized to create this order")
	}
	if len(req.Products) == 0 {
		return nil, badRequest("At least one item is required")
	}

	applied := make([]models.LineItem, 0, len(req.Products))
	for _, item := range req.Products {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollback(ctx, applied)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return nil, notFound(fmt.Sprintf("Product %s not found", item.ProductID))
			case errors.Is(err, repository.ErrInsufficientStock):
				return nil, badRequest(fmt.Sprintf("Product %s is out of stock", item.ProductID))
			default:
				zap.L().Error("Stock decrement failed",
					zap.String("product_id", item.ProductID), zap.Error(err))
				return nil, internal("Failed to update stock")
			}
		}
		applied = append(applied, item)
	}

	order := &models.Order{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Products:       req.Products,
		TotalPrice:     req.TotalPrice,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		Status:         models.OrderStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	order.PaymentID = s.payments.PaymentID(order)
	order.TrackingNumber = s.shipments.TrackingNumber(order)

	if err := s.orders.Insert(ctx, order); err != nil {
		s.rollback(ctx, applied)
		zap.L().Error("Order insert failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, internal("Failed to create order")
	}

	// The snapshot is a denormalized copy; a failure here leaves the
	// persisted order authoritative and is logged rather than unwound.
	if err := s.users.AppendPurchase(ctx, order.UserID, order.Snapshot()); err != nil {
		zap.L().Error("Failed to append purchase history",
			zap.String("order_id", order.ID), zap.String("user_id", order.UserID), zap.Error(err))
	}

	return order, nil
}

// rollback compensates decrements already applied in this request.
func (s *OrderService) rollback(ctx context.Context, applied []models.LineItem) {
	for _, item := range applied {
		if err := s.products.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			zap.L().Error("Stock rollback failed",
				zap.String("product_id", item.ProductID), zap.Int("quantity", item.Quantity), zap.Error(err))
		}
	}
}

// GetUserOrders returns the caller's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}
