package checkout

import (
	"testing"

	"bambora-bridge/internal/order"

	"github.com/stretchr/testify/assert"
)

func TestShippingAfterDiscount(t *testing.T) {
	t.Run("No discount", func(t *testing.T) {
		assert.Equal(t, float64(50), shippingAfterDiscount(50, 0))
	})

	t.Run("Discount larger than shipping clamps to zero", func(t *testing.T) {
		assert.Equal(t, float64(0), shippingAfterDiscount(50, 60))
	})

	t.Run("Discount subtracted", func(t *testing.T) {
		assert.Equal(t, float64(70), shippingAfterDiscount(100, 30))
	})
}

func TestCaptureLines(t *testing.T) {
	o := testOrder()
	inv := &order.Invoice{
		CurrencyCode: "DKK",
		Items: []order.DocumentItem{
			{SKU: "sku-b", Name: "Gadget", Qty: 1, RowTotal: 75, TaxAmount: 18.75, TaxPercent: 25, DiscountAmount: 10},
		},
		ShippingAmount:    50,
		ShippingTaxAmount: 12.5,
	}

	lines := CaptureLines(inv, o)

	assert.Len(t, lines, 2)

	// The invoiced item keeps its original checkout line number.
	assert.Equal(t, 2, lines[0].LineNumber)
	assert.Equal(t, "sku-b", lines[0].ID)

	shipping := lines[1]
	assert.Equal(t, "Shipping", shipping.Text)
	assert.Equal(t, 2, shipping.LineNumber)
	assert.Equal(t, int64(5000), shipping.TotalPrice)
}

func TestCaptureLines_ShippingDiscount(t *testing.T) {
	o := testOrder()
	o.ShippingDiscountAmount = 30
	inv := &order.Invoice{
		CurrencyCode:      "DKK",
		ShippingAmount:    100,
		ShippingTaxAmount: 0,
	}

	lines := CaptureLines(inv, o)

	assert.Len(t, lines, 1)
	assert.Equal(t, int64(7000), lines[0].TotalPrice)
}

func TestRefundLines(t *testing.T) {
	o := testOrder()
	memo := &order.CreditMemo{
		CurrencyCode: "DKK",
		Items: []order.DocumentItem{
			{SKU: "sku-a", Name: "Widget", Qty: 2, RowTotal: 100, TaxAmount: 25, TaxPercent: 25},
		},
		ShippingAmount:    50,
		ShippingTaxAmount: 12.5,
		Adjustment:        20,
	}

	lines := RefundLines(memo, o)

	assert.Len(t, lines, 3)

	assert.Equal(t, 1, lines[0].LineNumber)

	shipping := lines[1]
	assert.Equal(t, "Shipping", shipping.Text)
	assert.Equal(t, 2, shipping.LineNumber)

	adjustment := lines[2]
	assert.Equal(t, "Adjustment refund", adjustment.Text)
	assert.Equal(t, 3, adjustment.LineNumber)
	assert.Equal(t, int64(2000), adjustment.TotalPrice)
	assert.Equal(t, 0, adjustment.VAT)
	assert.Equal(t, int64(0), adjustment.TotalPriceVATAmount)
}

func TestRefundLines_ShippingDiscountClampedToZero(t *testing.T) {
	o := testOrder()
	o.ShippingDiscountAmount = 60
	memo := &order.CreditMemo{
		CurrencyCode:   "DKK",
		ShippingAmount: 50,
	}

	lines := RefundLines(memo, o)

	// shipping then adjustment
	assert.Len(t, lines, 2)
	assert.Equal(t, int64(0), lines[0].TotalPrice)
}
