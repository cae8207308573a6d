package services

import (
	"github.com/heavymachinery/backend/models"
	"go.uber.org/zap"
)

// TrackingSitePickup is the sentinel tracking number for orders picked
// up on site; no carrier is involved.
const TrackingSitePickup = "site_pickup"

// ShipmentCreator simulates the carrier integrations (SMSA, Aramex),
// returning a synthetic tracking number per carrier.
type ShipmentCreator struct{}

func NewShipmentCreator() *ShipmentCreator {
	return &ShipmentCreator{}
}

// TrackingNumber selects the tracking strategy by delivery method.
func (s *ShipmentCreator) TrackingNumber(order *models.Order) string {
	switch order.DeliveryMethod {
	case models.DeliverySMSA:
		zap.L().Info("Creating shipment with SMSA", zap.String("order_id", order.ID))
		return "smsa_" + shortID()
	case models.DeliveryAramex:
		zap.L().Info("Creating shipment with Aramex", zap.String("order_id", order.ID))
		return "aramex_" + shortID()
	default:
		return TrackingSitePickup
	}
}
