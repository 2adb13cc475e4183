// Package calc computes invoice money amounts. All arithmetic is exact
// decimal; two-place rounding happens only when formatting for display, so
// per-line rounding error never accumulates into the totals.
package calc

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// Totals are the derived money fields of an invoice.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Balance  decimal.Decimal
	Paid     bool
}

// ComputeLine snapshots one draft row against its catalog item. The second
// return is false for an incomplete row (no item, zero/negative quantity or
// rate), which callers skip rather than reject. Tax rate resolution: catalog
// item's rate, else the default; the item may already be gone, in which case
// the default applies and the snapshot fields stay empty.
func ComputeLine(line invoicedomain.DraftLine, item *catalogdomain.Item) (invoicedomain.LineItem, bool) {
	if line.ItemID == 0 || !line.Qty.IsPositive() || !line.Rate.IsPositive() {
		return invoicedomain.LineItem{}, false
	}

	out := invoicedomain.LineItem{
		ItemID:  line.ItemID,
		Qty:     line.Qty,
		Rate:    line.Rate,
		Total:   line.Qty.Mul(line.Rate),
		GSTRate: catalogdomain.DefaultGSTRate,
	}
	if item != nil {
		out.GSTRate = item.EffectiveGSTRate()
		out.HSN = item.HSN
		out.Name = item.Name
	}
	return out, true
}

// ComputeTotals derives subtotal, tax, total and balance from completed
// lines. Balance <= 0 marks the invoice paid, including exactly zero.
func ComputeTotals(lines []invoicedomain.LineItem, received decimal.Decimal) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total)
		// Shift(-2) divides by 100 exactly, unlike Div.
		tax = tax.Add(line.Total.Mul(line.GSTRate).Shift(-2))
	}

	total := subtotal.Add(tax)
	balance := total.Sub(received)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Balance:  balance,
		Paid:     !balance.IsPositive(),
	}
}

// Display rounds a decimal for presentation. Never feed the result back
// into arithmetic.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
