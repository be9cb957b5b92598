package checkout

import "bambora-bridge/internal/order"

// DocumentLines maps invoice or credit-memo rows to gateway lines. Each line
// keeps the number its item had in the original checkout request so partial
// operations reconcile against the gateway's ledger.
func DocumentLines(items []order.DocumentItem, o *order.Order) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		vat := item.TaxPercent
		lines = append(lines, CreateLine(
			item.Description,
			item.SKU,
			o.ItemLineNumber(item.SKU),
			item.Qty,
			item.Name,
			item.RowTotal,
			item.TaxAmount,
			&vat,
			o.BaseCurrencyCode,
			item.DiscountAmount,
		))
	}
	return lines
}

// CaptureLines builds the line set for a partial capture from the invoice the
// host produced for it.
func CaptureLines(inv *order.Invoice, o *order.Order) []Line {
	lines := DocumentLines(inv.Items, o)

	shipping := shippingAfterDiscount(inv.ShippingAmount, o.ShippingDiscountAmount)
	lines = append(lines, CreateLine(
		shippingLineText, shippingLineText, len(lines)+1, 1, shippingLineText,
		shipping, inv.ShippingTaxAmount, nil, inv.CurrencyCode, 0,
	))

	return lines
}

// RefundLines builds the line set for a refund from its credit memo: the
// memo's rows, a shipping line, and a trailing adjustment-refund line with
// no VAT.
func RefundLines(memo *order.CreditMemo, o *order.Order) []Line {
	lines := DocumentLines(memo.Items, o)

	shipping := shippingAfterDiscount(memo.ShippingAmount, o.ShippingDiscountAmount)
	lines = append(lines, CreateLine(
		shippingLineText, shippingLineText, len(lines)+1, 1, shippingLineText,
		shipping, memo.ShippingTaxAmount, nil, memo.CurrencyCode, 0,
	))

	lines = append(lines, CreateLine(
		adjustmentLineText, adjustmentLineText, len(lines)+1, 1, adjustmentLineText,
		memo.Adjustment, 0, nil, memo.CurrencyCode, 0,
	))

	return lines
}

// shippingAfterDiscount applies the order-level shipping discount to the
// shipping amount of an invoice or credit memo, never going below zero.
func shippingAfterDiscount(amount, discount float64) float64 {
	if discount <= 0 {
		return amount
	}
	if amount-discount < 0 {
		return 0
	}
	return amount - discount
}
