package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(dir, node), dir
}

func TestAddPartySurvivesReload(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	added, err := store.AddParty(ctx, "u1", catalogdomain.Party{
		Name:      "Acme Traders",
		GSTNumber: "27AAAAA0000A1Z5",
		State:     "Maharashtra",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	// a fresh Store over the same directory simulates a reload
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	reloaded := New(dir, node)

	parties, err := reloaded.ListParties(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.Equal(t, "Acme Traders", parties[0].Name)
	assert.Equal(t, added.ID, parties[0].ID)
}

func TestSnapshotUsesCamelCaseSchema(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddInvoice(ctx, "u1", invoicedomain.Invoice{
		InvoiceNumber: "1001",
		PartyID:       7,
		Date:          "2026-08-29",
		PaymentType:   invoicedomain.PaymentTypeCredit,
		Items: []invoicedomain.LineItem{
			{ItemID: 3, Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Total: decimal.NewFromInt(10), GSTRate: decimal.NewFromInt(18)},
		},
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "ivoice_db_u1.json"))
	require.NoError(t, err)

	var blob map[string]any
	require.NoError(t, json.Unmarshal(raw, &blob))
	assert.Contains(t, blob, "nextInvoiceId")

	invoices := blob["invoices"].([]any)
	first := invoices[0].(map[string]any)
	assert.Contains(t, first, "invoiceNumber")
	assert.Contains(t, first, "partyId")
	assert.NotContains(t, first, "invoice_number")
}

func TestNextInvoiceNumberSeedsAndReseeds(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	next, err := store.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), next, "empty store starts at the seed")

	_, err = store.AddInvoice(ctx, "u1", invoicedomain.Invoice{
		InvoiceNumber: "2050",
		PartyID:       1,
		Date:          "2026-08-29",
		Items:         []invoicedomain.LineItem{{ItemID: 1, Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(5), GSTRate: decimal.NewFromInt(18)}},
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)

	next, err = store.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2051), next, "saving re-seeds the counter from the submitted number")
}

func TestCounterRecomputedForLegacySnapshot(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	// snapshot written before the counter existed
	legacy := `{"parties":[],"items":[],"invoices":[
		{"id":1,"invoiceNumber":"1010","partyId":1,"date":"2026-01-01","paymentType":"Credit","items":[],"received":0,"createdAt":"2026-01-01T00:00:00Z"},
		{"id":2,"invoiceNumber":"DRAFT-X","partyId":1,"date":"2026-01-02","paymentType":"Credit","items":[],"received":0,"createdAt":"2026-01-02T00:00:00Z"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ivoice_db_u1.json"), []byte(legacy), 0o644))

	next, err := store.NextInvoiceNumber(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1011), next, "max numeric + 1; non-numeric counts as 1000")
}

func TestDeleteInvoice(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	inv, err := store.AddInvoice(ctx, "u1", invoicedomain.Invoice{
		InvoiceNumber: "1001",
		PartyID:       1,
		Date:          "2026-08-29",
		Items:         []invoicedomain.LineItem{{ItemID: 1, Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(3), GSTRate: decimal.NewFromInt(18)}},
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteInvoice(ctx, "u1", inv.ID))

	invoices, err := store.ListInvoices(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, invoices)

	// deleting again is a no-op
	require.NoError(t, store.DeleteInvoice(ctx, "u1", inv.ID))
}

func TestUsersAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, "u1", catalogdomain.Item{Name: "Bricks", Rate: decimal.NewFromInt(9), GSTRate: decimal.NewFromInt(18), CreatedAt: time.Now()})
	require.NoError(t, err)

	items, err := store.ListItems(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInvoiceAggregatesAreRecomputedOnRead(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	// stored aggregates disagree with the line items; the read path must
	// trust the lines
	snapshot := `{"parties":[],"items":[],"invoices":[
		{"id":5,"invoiceNumber":"1001","partyId":1,"date":"2026-01-01","paymentType":"Credit",
		 "items":[{"itemId":1,"qty":"2","rate":"100","total":"1","gstRate":"18"}],
		 "subtotal":"1","tax":"0","total":"1","received":"50","balance":"1","paid":true,
		 "createdAt":"2026-01-01T00:00:00Z"}
	],"nextInvoiceId":1002}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ivoice_db_u1.json"), []byte(snapshot), 0o644))

	invoices, err := store.ListInvoices(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(36)), "tax %s", inv.Tax)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(236)), "total %s", inv.Total)
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(186)), "balance %s", inv.Balance)
	assert.False(t, inv.Paid)
}
