package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pasar/internal/services"
)

func TestPriceOrder_Subtotal(t *testing.T) {
	quote := services.PriceOrder([]services.PricedLine{
		{UnitPrice: 100.0, Quantity: 3},
		{UnitPrice: 50.0, Quantity: 2},
	}, "")

	assert.Equal(t, 400.0, quote.Subtotal)
	assert.Equal(t, 50.0, quote.Shipping)
	assert.Equal(t, 0.0, quote.Discount)
	assert.Equal(t, 450.0, quote.Total)
}

func TestPriceOrder_ShippingBoundary(t *testing.T) {
	// Just below the threshold: shipping applies.
	below := services.PriceOrder([]services.PricedLine{{UnitPrice: 499.99, Quantity: 1}}, "")
	assert.Equal(t, 50.0, below.Shipping)
	assert.Equal(t, 549.99, below.Total)

	// Exactly at the threshold: free shipping.
	at := services.PriceOrder([]services.PricedLine{{UnitPrice: 500.0, Quantity: 1}}, "")
	assert.Equal(t, 0.0, at.Shipping)
	assert.Equal(t, 500.0, at.Total)
}

func TestPriceOrder_DiscountCode(t *testing.T) {
	quote := services.PriceOrder([]services.PricedLine{{UnitPrice: 1000.0, Quantity: 1}}, "SAVE10")
	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Shipping)
	assert.Equal(t, 100.0, quote.Discount)
	assert.Equal(t, 900.0, quote.Total)
}

func TestPriceOrder_UnknownCodeIgnored(t *testing.T) {
	quote := services.PriceOrder([]services.PricedLine{{UnitPrice: 1000.0, Quantity: 1}}, "SAVE50")
	assert.Equal(t, 0.0, quote.Discount)
	assert.Equal(t, 1000.0, quote.Total)

	lowercase := services.PriceOrder([]services.PricedLine{{UnitPrice: 1000.0, Quantity: 1}}, "save10")
	assert.Equal(t, 0.0, lowercase.Discount)
}

func TestPriceOrder_Empty(t *testing.T) {
	quote := services.PriceOrder(nil, "")
	assert.Equal(t, 0.0, quote.Subtotal)
	assert.Equal(t, 50.0, quote.Shipping)
	assert.Equal(t, 50.0, quote.Total)
}
