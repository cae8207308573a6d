package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heavymachinery/backend/models"
	"go.uber.org/zap"
)

// PaymentIDCash is the sentinel payment id for cash-on-delivery orders;
// no payment provider is involved.
const PaymentIDCash = "cash_on_delivery"

// PaymentProcessor simulates the financed-payment integrations (Tamara,
// Tabby). Each call returns a synthetic payment id in the provider's
// namespace; no network traffic happens here.
type PaymentProcessor struct{}

func NewPaymentProcessor() *PaymentProcessor {
	return &PaymentProcessor{}
}

// PaymentID selects the id-generation strategy by payment method.
func (p *PaymentProcessor) PaymentID(order *models.Order) string {
	switch order.PaymentMethod {
	case models.PaymentTamara:
		zap.L().Info("Processing payment with Tamara", zap.String("order_id", order.ID))
		return "tamara_" + shortID()
	case models.PaymentTabby:
		zap.L().Info("Processing payment with Tabby", zap.String("order_id", order.ID))
		return "tabby_" + shortID()
	case models.PaymentCustomInstallment:
		return fmt.Sprintf("custom_installment_%d", time.Now().UTC().Unix())
	default:
		return PaymentIDCash
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
