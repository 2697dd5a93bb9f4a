package order

import (
	"regexp"
	"testing"
	"time"
)

func TestComputeTotalsFlatShipping(t *testing.T) {
	totals := ComputeTotals([]CheckoutLine{
		{ProductID: 1, Name: "Desk Lamp", UnitPrice: 30.00, Quantity: 1},
	})

	if totals.Subtotal != 30.00 {
		t.Errorf("subtotal: got %.2f, want 30.00", totals.Subtotal)
	}
	if totals.Tax != 6.30 {
		t.Errorf("tax: got %.2f, want 6.30", totals.Tax)
	}
	if totals.Shipping != 5.99 {
		t.Errorf("shipping: got %.2f, want 5.99", totals.Shipping)
	}
	if totals.Total != 42.29 {
		t.Errorf("total: got %.2f, want 42.29", totals.Total)
	}
}

func TestComputeTotalsFreeShipping(t *testing.T) {
	totals := ComputeTotals([]CheckoutLine{
		{ProductID: 2, Name: "Office Chair", UnitPrice: 60.00, Quantity: 1},
	})

	if totals.Subtotal != 60.00 {
		t.Errorf("subtotal: got %.2f, want 60.00", totals.Subtotal)
	}
	if totals.Tax != 12.60 {
		t.Errorf("tax: got %.2f, want 12.60", totals.Tax)
	}
	if totals.Shipping != 0 {
		t.Errorf("shipping: got %.2f, want 0", totals.Shipping)
	}
	if totals.Total != 72.60 {
		t.Errorf("total: got %.2f, want 72.60", totals.Total)
	}
}

func TestComputeTotalsThresholdIsExclusive(t *testing.T) {
	// exactly at the threshold still pays shipping
	totals := ComputeTotals([]CheckoutLine{
		{ProductID: 3, UnitPrice: 50.00, Quantity: 1},
	})
	if totals.Shipping != FlatShippingFee {
		t.Errorf("shipping at threshold: got %.2f, want %.2f", totals.Shipping, FlatShippingFee)
	}
}

func TestComputeTotalsMultipleLines(t *testing.T) {
	totals := ComputeTotals([]CheckoutLine{
		{ProductID: 1, UnitPrice: 12.49, Quantity: 2},
		{ProductID: 2, UnitPrice: 3.99, Quantity: 3},
	})

	if totals.Subtotal != 36.95 {
		t.Errorf("subtotal: got %.2f, want 36.95", totals.Subtotal)
	}
	if totals.Tax != 7.76 {
		t.Errorf("tax: got %.2f, want 7.76", totals.Tax)
	}
	want := round2(totals.Subtotal + totals.Tax + totals.Shipping)
	if totals.Total != want {
		t.Errorf("total: got %.2f, want %.2f", totals.Total, want)
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20250307-\d{4}$`)

	for i := 0; i < 20; i++ {
		num := GenerateOrderNumber(now)
		if !pattern.MatchString(num) {
			t.Fatalf("order number %q does not match %s", num, pattern)
		}
	}
}
