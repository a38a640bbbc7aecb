package services

// Pricing constants. There is a single recognized discount code; an
// unrecognized code yields zero discount rather than an error.
const (
	ShippingFee           = 50.0
	FreeShippingThreshold = 500.0
	DiscountCode          = "SAVE10"
	discountRate          = 0.10
)

// PricedLine is a (unit price, quantity) pair fed to the pricing engine.
type PricedLine struct {
	UnitPrice float64
	Quantity  int
}

// Quote is the monetary breakdown of an order.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// PriceOrder computes the quote for a line-item list and an optional
// discount code. Shipping is waived at subtotals of 500 and above.
// The function is pure: no store access, no clock.
func PriceOrder(lines []PricedLine, discountCode string) Quote {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	shipping := 0.0
	if subtotal < FreeShippingThreshold {
		shipping = ShippingFee
	}

	discount := 0.0
	if discountCode == DiscountCode {
		discount = subtotal * discountRate
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}
