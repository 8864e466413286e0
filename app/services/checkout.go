package services

import (
	"math"

	"github.com/anvikawear/anvika/app/models"
)

// Checkout pricing rules. Shipping is waived once the subtotal reaches the
// free-shipping threshold; tax is a flat rate on the subtotal.
const (
	TaxRate               = 0.08
	ShippingFlat          = 9.99
	FreeShippingThreshold = 100.0

	// TotalTolerance is how far a client-computed total may drift from the
	// server recomputation before the order is rejected (one cent, to
	// absorb floating-point rounding in the client).
	TotalTolerance = 0.01
)

// Totals is the server-side recomputation of an order's money fields.
type Totals struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// ComputeTotals derives subtotal, shipping, tax and total from the
// submitted line items. Pure function; quantities of zero count as one,
// matching the store schema's default.
func ComputeTotals(items []models.OrderItem) Totals {
	var subtotal float64
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal += item.Price * float64(qty)
	}
	subtotal = round2(subtotal)

	shipping := ShippingFlat
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}

	tax := round2(subtotal * TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    round2(subtotal + shipping + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
