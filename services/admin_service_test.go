package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"github.com/heavymachinery/backend/services"
	"github.com/stretchr/testify/assert"
)

type fakeAdminOrders struct {
	orders   []models.Order
	statuses map[string]string
}

func (f *fakeAdminOrders) FindAll(_ context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeAdminOrders) FindCreatedBetween(_ context.Context, from, to time.Time) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeAdminOrders) UpdateStatus(_ context.Context, id, status string) error {
	for _, o := range f.orders {
		if o.ID == id {
			if f.statuses == nil {
				f.statuses = map[string]string{}
			}
			f.statuses[id] = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeInventory struct {
	products []models.Product
}

func (f *fakeInventory) InventoryReport(_ context.Context) ([]models.Product, error) {
	return f.products, nil
}

func TestMonthlySales_OnlyCurrentMonth(t *testing.T) {
	now := time.Now().UTC()
	orders := &fakeAdminOrders{orders: []models.Order{
		{ID: "o1", TotalPrice: 100, CreatedAt: now},
		{ID: "o2", TotalPrice: 250, CreatedAt: now},
		{ID: "o3", TotalPrice: 999, CreatedAt: now.AddDate(0, -2, 0)},
	}}
	svc := services.NewAdminService(orders, &fakeInventory{})

	report, svcErr := svc.MonthlySales(context.Background())
	assert.Nil(t, svcErr)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 350.0, report.TotalSales)
	assert.Equal(t, now.Format("2006-01"), report.Month)
}

func TestInventory_NameAndStock(t *testing.T) {
	inventory := &fakeInventory{products: []models.Product{
		{Name: "Hydraulic Pump", Stock: 3},
		{Name: "Oil Seal", Stock: 0},
	}}
	svc := services.NewAdminService(&fakeAdminOrders{}, inventory)

	items, svcErr := svc.Inventory(context.Background())
	assert.Nil(t, svcErr)
	assert.Equal(t, []services.InventoryItem{
		{Name: "Hydraulic Pump", Stock: 3},
		{Name: "Oil Seal", Stock: 0},
	}, items)
}

func TestOrdersCSV_HeaderAndRows(t *testing.T) {
	created := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	orders := &fakeAdminOrders{orders: []models.Order{{
		ID:             "o1",
		UserID:         "user-1",
		TotalPrice:     199.9,
		PaymentMethod:  models.PaymentTamara,
		DeliveryMethod: models.DeliverySMSA,
		Status:         models.OrderStatusPending,
		PaymentID:      "tamara_abc12345",
		TrackingNumber: "smsa_def67890",
		CreatedAt:      created,
	}}}
	svc := services.NewAdminService(orders, &fakeInventory{})

	payload, svcErr := svc.OrdersCSV(context.Background())
	assert.Nil(t, svcErr)
	assert.Equal(t,
		"id,user_id,total_price,payment_method,delivery_method,status,payment_id,tracking_number,created_at\n"+
			"o1,user-1,199.90,Tamara,SMSA,Pending,tamara_abc12345,smsa_def67890,2026-08-15T10:30:00Z\n",
		string(payload))
}

func TestUpdateOrderStatus(t *testing.T) {
	orders := &fakeAdminOrders{orders: []models.Order{{ID: "o1", Status: models.OrderStatusPending}}}
	svc := services.NewAdminService(orders, &fakeInventory{})

	svcErr := svc.UpdateOrderStatus(context.Background(), "o1", "Shipped")
	assert.Nil(t, svcErr)
	assert.Equal(t, "Shipped", orders.statuses["o1"])

	svcErr = svc.UpdateOrderStatus(context.Background(), "missing", "Shipped")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	svcErr = svc.UpdateOrderStatus(context.Background(), "o1", "")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}
