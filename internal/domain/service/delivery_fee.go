package service

import (
	"math"

	"agricsmart/internal/domain/entity"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/utils"
)

const (
	deliveryBaseFee      = 10.0
	deliveryFreeRadiusKm = 5.0
	deliveryPerKmRate    = 1.5
	shippingBaseFee      = 15.0
	shippingPerKmRate    = 0.8
)

// DeliveryFeeCalculator prices an order's delivery leg from the distance
// between seller and buyer.
type DeliveryFeeCalculator struct{}

func NewDeliveryFeeCalculator() *DeliveryFeeCalculator {
	return &DeliveryFeeCalculator{}
}

// Calculate returns the fee for moving goods from seller to buyer. Pickup is
// always free. Delivery charges a base fee plus a per-km rate beyond a free
// radius; shipping charges a base fee plus a per-km rate from km zero. The
// result is rounded to 2 decimal places.
func (c *DeliveryFeeCalculator) Calculate(seller, buyer entity.GeoPoint, method string) (float64, error) {
	if method == entity.DeliveryMethodPickup {
		return 0, nil
	}

	distance := utils.HaversineKm(seller.Latitude, seller.Longitude, buyer.Latitude, buyer.Longitude)

	var fee float64
	switch method {
	case entity.DeliveryMethodDelivery:
		fee = deliveryBaseFee + math.Max(0, distance-deliveryFreeRadiusKm)*deliveryPerKmRate
	case entity.DeliveryMethodShipping:
		fee = shippingBaseFee + distance*shippingPerKmRate
	default:
		return 0, errors.BadRequest("Invalid delivery method", nil)
	}

	return math.Round(fee*100) / 100, nil
}
