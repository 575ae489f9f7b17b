package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/internal/domain/entity"
)

var (
	accra  = entity.GeoPoint{Latitude: 5.6037, Longitude: -0.1870}
	kumasi = entity.GeoPoint{Latitude: 6.6666, Longitude: -1.6163}
)

func TestPickupIsAlwaysFree(t *testing.T) {
	calc := NewDeliveryFeeCalculator()

	fee, err := calc.Calculate(accra, kumasi, entity.DeliveryMethodPickup)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fee)
}

func TestDeliveryWithinFreeRadiusChargesBaseOnly(t *testing.T) {
	calc := NewDeliveryFeeCalculator()

	fee, err := calc.Calculate(accra, accra, entity.DeliveryMethodDelivery)
	require.NoError(t, err)
	assert.Equal(t, 10.0, fee)

	// ~1km north, still inside the free radius.
	near := entity.GeoPoint{Latitude: accra.Latitude + 0.009, Longitude: accra.Longitude}
	fee, err = calc.Calculate(accra, near, entity.DeliveryMethodDelivery)
	require.NoError(t, err)
	assert.Equal(t, 10.0, fee)
}

func TestDeliveryChargesPerKmBeyondFreeRadius(t *testing.T) {
	calc := NewDeliveryFeeCalculator()

	fee, err := calc.Calculate(accra, kumasi, entity.DeliveryMethodDelivery)
	require.NoError(t, err)

	// Accra to Kumasi is roughly 200km, so base 10 plus 1.50 per km past
	// the first 5km.
	assert.Greater(t, fee, 10.0)
	assert.InDelta(t, 10.0+(200.0-5.0)*1.5, fee, 20.0)

	// Fees are rounded to two decimals.
	assert.Equal(t, math.Round(fee*100)/100, fee)
}

func TestShippingChargesFromFirstKilometer(t *testing.T) {
	calc := NewDeliveryFeeCalculator()

	fee, err := calc.Calculate(accra, accra, entity.DeliveryMethodShipping)
	require.NoError(t, err)
	assert.Equal(t, 15.0, fee)

	fee, err = calc.Calculate(accra, kumasi, entity.DeliveryMethodShipping)
	require.NoError(t, err)
	assert.InDelta(t, 15.0+200.0*0.8, fee, 15.0)
}

func TestUnknownMethodIsRejected(t *testing.T) {
	calc := NewDeliveryFeeCalculator()

	_, err := calc.Calculate(accra, kumasi, "teleport")
	assert.Error(t, err)
}
