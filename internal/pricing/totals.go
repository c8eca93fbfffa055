package pricing

import "github.com/shopspring/decimal"

// Totals are the invoice footer figures, all in the invoice currency.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountTotal  decimal.Decimal `json:"discountTotal"`
	TaxTotal       decimal.Decimal `json:"taxTotal"`
	Transportation decimal.Decimal `json:"transportation"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// LineTotal applies the line total rule:
// quantity * unitPrice * (1 - discountRate/100).
func LineTotal(quantity int, unitPrice, discountRate decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return gross.Sub(gross.Mul(discountRate).Div(hundred))
}

// ComputeTotals derives the footer figures from the current line set. It is
// deterministic over its inputs and keeps no incremental state, so edits can
// never accumulate rounding drift:
//
//	subtotal      = sum(line.total)
//	discountTotal = sum(quantity * unitPrice * discountRate/100), from raw fields
//	taxTotal      = 0 when noTax, else sum(line.total * taxRate/100)
//	grandTotal    = subtotal + transportation + taxTotal
func ComputeTotals(lines []Line, noTax bool, transportation decimal.Decimal) Totals {
	totals := Totals{
		Subtotal:       decimal.Zero,
		DiscountTotal:  decimal.Zero,
		TaxTotal:       decimal.Zero,
		Transportation: transportation,
	}

	for _, l := range lines {
		totals.Subtotal = totals.Subtotal.Add(l.Total)

		gross := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		totals.DiscountTotal = totals.DiscountTotal.Add(gross.Mul(l.DiscountRate).Div(hundred))

		if !noTax {
			// Tax applies to the post-discount line total, not to gross.
			totals.TaxTotal = totals.TaxTotal.Add(l.Total.Mul(l.TaxRate).Div(hundred))
		}
	}

	totals.GrandTotal = totals.Subtotal.Add(transportation).Add(totals.TaxTotal)
	return totals
}
