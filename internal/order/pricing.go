package order

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Pricing policy. These are business constants, not per-request knobs.
const (
	TaxRate               = 0.21 // VAT
	FreeShippingThreshold = 50.0
	FlatShippingFee       = 5.99

	orderNumberPrefix = "ORD"
)

// CheckoutLine is one cart row snapshotted with the product's current state
// at the moment of checkout.
type CheckoutLine struct {
	ProductID int
	Name      string
	Image     string
	UnitPrice float64
	Quantity  int
}

func (l CheckoutLine) LineTotal() float64 {
	return round2(l.UnitPrice * float64(l.Quantity))
}

// Totals is the price breakdown stored on the order row.
// Total always equals Subtotal + Tax + Shipping exactly.
type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeTotals prices a cart snapshot: subtotal over the lines, 21% VAT,
// and a flat shipping fee waived above the free-shipping threshold. Every
// step rounds to 2 decimals so the stored invariant holds exactly.
func ComputeTotals(lines []CheckoutLine) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * TaxRate)

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    round2(subtotal + tax + shipping),
	}
}

// GenerateOrderNumber builds a human-readable reference: prefix, date, four
// random digits. Collisions are not retried; the unique index on the orders
// table surfaces one as a conflict instead of a silent duplicate.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", orderNumberPrefix, now.Format("20060102"), rand.Intn(10000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
