package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"go.uber.org/zap"
)

// AdminOrderStore is the slice of the order repository the back office
// reads and mutates.
type AdminOrderStore interface {
	FindAll(ctx context.Context) ([]models.Order, error)
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// InventoryReporter feeds the stock report and its CSV export.
type InventoryReporter interface {
	InventoryReport(ctx context.Context) ([]models.Product, error)
}

// SalesReport aggregates the current month's orders.
type SalesReport struct {
	Month      string  `json:"month"`
	OrderCount int     `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

// InventoryItem is one row of the stock report.
type InventoryItem struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// UpdateOrderStatusRequest is the admin payload for moving an order
// through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminService is the back office: sales and inventory reporting, CSV
// export and order status management.
type AdminService struct {
	orders   AdminOrderStore
	products InventoryReporter
}

func NewAdminService(orders AdminOrderStore, products InventoryReporter) *AdminService {
	return &AdminService{orders: orders, products: products}
}

// MonthlySales totals the orders created this calendar month.
func (s *AdminService) MonthlySales(ctx context.Context) (*SalesReport, *ServiceError) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	orders, err := s.orders.FindCreatedBetween(ctx, from, to)
	if err != nil {
		zap.L().Error("Monthly sales query failed", zap.Error(err))
		return nil, internal("Failed to compute sales report")
	}

	report := &SalesReport{Month: from.Format("2006-01")}
	for _, order := range orders {
		report.OrderCount++
		report.TotalSales += order.TotalPrice
	}
	return report, nil
}

// Inventory returns the per-product stock report.
func (s *AdminService) Inventory(ctx context.Context) ([]InventoryItem, *ServiceError) {
	products, err := s.products.InventoryReport(ctx)
	if err != nil {
		zap.L().Error("Inventory query failed", zap.Error(err))
		return nil, internal("Failed to fetch inventory")
	}

	items := make([]InventoryItem, 0, len(products))
	for _, p := range products {
		items = append(items, InventoryItem{Name: p.Name, Stock: p.Stock})
	}
	return items, nil
}

// OrdersCSV renders every order as a CSV document for the back office.
func (s *AdminService) OrdersCSV(ctx context.Context) ([]byte, *ServiceError) {
	orders, svcErr := s.AllOrders(ctx)
	if svcErr != nil {
		return nil, svcErr
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "user_id", "total_price", "payment_method", "delivery_method", "status", "payment_id", "tracking_number", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, internal("Failed to export orders")
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.UserID,
			strconv.FormatFloat(o.TotalPrice, 'f', 2, 64),
			o.PaymentMethod,
			o.DeliveryMethod,
			o.Status,
			o.PaymentID,
			o.TrackingNumber,
			o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, internal("Failed to export orders")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		zap.L().Error("Order CSV export failed", zap.Error(err))
		return nil, internal("Failed to export orders")
	}
	return buf.Bytes(), nil
}

// AllOrders lists every order, newest first.
func (s *AdminService) AllOrders(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		zap.L().Error("Order listing failed", zap.Error(err))
		return nil, internal("Failed to fetch orders")
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. The update touches
// the live order only; purchase-history snapshots keep the status they
// were taken with.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID, status string) *ServiceError {
	if status == "" {
		return badRequest("Status is required")
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(fmt.Sprintf("Order %s not found", orderID))
		}
		zap.L().Error("Order status update failed", zap.String("order_id", orderID), zap.Error(err))
		return internal("Failed to update order status")
	}
	zap.L().Info("Order status updated", zap.String("order_id", orderID), zap.String("status", status))
	return nil
}
