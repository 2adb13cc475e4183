package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeLineSnapshotsItem(t *testing.T) {
	item := &catalogdomain.Item{
		ID:      42,
		Name:    "Cement Bag",
		HSN:     "2523",
		Unit:    "Nos",
		Rate:    d("100"),
		GSTRate: d("28"),
	}

	line, ok := ComputeLine(invoicedomain.DraftLine{ItemID: 42, Qty: d("3"), Rate: d("95.50")}, item)
	require.True(t, ok)

	assert.Equal(t, "Cement Bag", line.Name)
	assert.Equal(t, "2523", line.HSN)
	assert.True(t, line.GSTRate.Equal(d("28")))
	// user-overridden rate wins over the catalog rate
	assert.True(t, line.Rate.Equal(d("95.50")))
	assert.True(t, line.Total.Equal(d("286.50")))
}

func TestComputeLineDefaultsTaxRate(t *testing.T) {
	// item with a zero rate falls back to the default
	line, ok := ComputeLine(invoicedomain.DraftLine{ItemID: 1, Qty: d("1"), Rate: d("10")}, &catalogdomain.Item{ID: 1})
	require.True(t, ok)
	assert.True(t, line.GSTRate.Equal(d("18")))

	// deleted item: default rate, empty snapshot fields
	line, ok = ComputeLine(invoicedomain.DraftLine{ItemID: 9, Qty: d("1"), Rate: d("10")}, nil)
	require.True(t, ok)
	assert.True(t, line.GSTRate.Equal(d("18")))
	assert.Empty(t, line.Name)
	assert.Empty(t, line.HSN)
}

func TestComputeLineIncompleteRows(t *testing.T) {
	item := &catalogdomain.Item{ID: 1, Rate: d("10")}

	cases := []invoicedomain.DraftLine{
		{ItemID: 0, Qty: d("1"), Rate: d("10")},
		{ItemID: 1, Qty: decimal.Zero, Rate: d("10")},
		{ItemID: 1, Qty: d("1"), Rate: decimal.Zero},
		{ItemID: 1, Qty: d("-2"), Rate: d("10")},
		{},
	}
	for i, tc := range cases {
		_, ok := ComputeLine(tc, item)
		assert.False(t, ok, "case %d should be incomplete", i)
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []invoicedomain.LineItem{
		{Total: d("200"), GSTRate: d("18")},
		{Total: d("150"), GSTRate: d("12")},
	}

	totals := ComputeTotals(lines, d("100"))

	assert.True(t, totals.Subtotal.Equal(d("350")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(d("54")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(d("404")), "total %s", totals.Total)
	assert.True(t, totals.Balance.Equal(d("304")), "balance %s", totals.Balance)
	assert.False(t, totals.Paid)
}

func TestComputeTotalsPaidBoundary(t *testing.T) {
	lines := []invoicedomain.LineItem{{Total: d("100"), GSTRate: d("18")}}

	exact := ComputeTotals(lines, d("118"))
	assert.True(t, exact.Balance.IsZero())
	assert.True(t, exact.Paid, "zero balance counts as paid")

	over := ComputeTotals(lines, d("150"))
	assert.True(t, over.Balance.Equal(d("-32")))
	assert.True(t, over.Paid)

	under := ComputeTotals(lines, d("117.99"))
	assert.False(t, under.Paid)
}

// Totals must come from exact sums, not from per-line rounded values.
func TestComputeTotalsNoCompoundedRounding(t *testing.T) {
	lines := []invoicedomain.LineItem{
		{Total: d("0.105"), GSTRate: d("18")},
		{Total: d("0.105"), GSTRate: d("18")},
	}

	totals := ComputeTotals(lines, decimal.Zero)
	assert.True(t, totals.Subtotal.Equal(d("0.21")))
	// rounded per line this would display 0.22
	assert.Equal(t, "0.21", Display(totals.Subtotal))
	assert.True(t, totals.Tax.Equal(d("0.0378")))
	assert.Equal(t, "0.04", Display(totals.Tax))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, decimal.Zero)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.True(t, totals.Paid)
}
