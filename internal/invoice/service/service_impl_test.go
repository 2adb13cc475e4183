package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	catalogservice "github.com/smallbiznis/ivoice/internal/catalog/service"
	"github.com/smallbiznis/ivoice/internal/clock"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
	"github.com/smallbiznis/ivoice/internal/store/local"
	"github.com/smallbiznis/ivoice/internal/store/remote"
)

// captureRenderer records the resolved view and returns canned bytes.
type captureRenderer struct {
	view invoicedomain.RenderView
	err  error
}

func (r *captureRenderer) Render(_ context.Context, view invoicedomain.RenderView) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.view = view
	return []byte("%PDF-1.7"), nil
}

type fixture struct {
	svc      invoicedomain.Service
	app      *state.App
	clock    *clock.FakeClock
	renderer *captureRenderer
	party    catalogdomain.Party
	item     catalogdomain.Item
}

// newFixture wires the service against an unreachable primary and a real
// on-disk fallback, matching how the app behaves with no network.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	primary := remote.New(func() (*gorm.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, node, zap.NewNop())
	fallback := local.New(t.TempDir(), node)
	gateway := store.NewGateway(primary, fallback, zap.NewNop())

	app := state.New(state.User{ID: "u1", Name: "Test User"})
	fake := clock.NewFakeClock(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	renderer := &captureRenderer{}

	// catalog records go through the real catalog service so invoice-side
	// lookups resolve the same way they do in production
	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{
		App: app, Gateway: gateway, Clock: fake, Log: zap.NewNop(),
	})
	party, err := catalogSvc.CreateParty(context.Background(), catalogdomain.CreatePartyRequest{
		Name: "Acme Traders", GSTNumber: "27AAAAA0000A1Z5", State: "Maharashtra",
	})
	require.NoError(t, err)
	item, err := catalogSvc.CreateItem(context.Background(), catalogdomain.CreateItemRequest{
		Name: "Cement Bag", HSN: "2523", Unit: "Nos", Rate: decimal.NewFromInt(100), GSTRate: decimal.NewFromInt(18),
	})
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		App:      app,
		Catalog:  catalogSvc,
		Gateway:  gateway,
		Clock:    fake,
		Renderer: renderer,
		Log:      zap.NewNop(),
	})
	return &fixture{svc: svc, app: app, clock: fake, renderer: renderer, party: party, item: item}
}

func (f *fixture) draft() invoicedomain.Draft {
	return invoicedomain.Draft{
		InvoiceNumber: "1001",
		PartyID:       f.party.ID,
		Date:          "2026-08-29",
		PaymentType:   invoicedomain.PaymentTypeCredit,
		Lines: []invoicedomain.DraftLine{
			{ItemID: f.item.ID, Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
		Received: decimal.NewFromInt(50),
	}
}

func TestCreateDraftDefaults(t *testing.T) {
	f := newFixture(t)

	draft, err := f.svc.CreateDraft(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1001", draft.InvoiceNumber)
	assert.Equal(t, "2026-08-29", draft.Date)
	assert.Equal(t, invoicedomain.PaymentTypeCredit, draft.PaymentType)
	assert.True(t, draft.Received.IsZero())
	require.Len(t, draft.Lines, 1)
	assert.Zero(t, draft.Lines[0].ItemID)
}

func TestSaveComputesTotals(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Save(context.Background(), f.draft())
	require.NoError(t, err)
	assert.True(t, res.Degraded, "write landed on the fallback")

	inv := res.Invoice
	assert.NotZero(t, inv.ID)
	assert.Equal(t, "1001", inv.InvoiceNumber)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.Tax.Equal(decimal.NewFromInt(36)), "tax %s", inv.Tax)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(236)), "total %s", inv.Total)
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(186)), "balance %s", inv.Balance)
	assert.False(t, inv.Paid)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Cement Bag", inv.Items[0].Name)
	assert.Equal(t, "2523", inv.Items[0].HSN)

	assert.True(t, f.app.Offline(), "degraded save flips the offline indicator")
	assert.Equal(t, int64(1002), f.app.NextInvoiceNumber())
}

func TestSaveValidationLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*invoicedomain.Draft)
		wantErr error
	}{
		{"missing party", func(d *invoicedomain.Draft) { d.PartyID = 0 }, invoicedomain.ErrMissingParty},
		{"missing date", func(d *invoicedomain.Draft) { d.Date = "  " }, invoicedomain.ErrMissingDate},
		{"missing number", func(d *invoicedomain.Draft) { d.InvoiceNumber = "" }, invoicedomain.ErrMissingNumber},
		{"no complete lines", func(d *invoicedomain.Draft) { d.Lines = []invoicedomain.DraftLine{{}, {ItemID: f.item.ID}} }, invoicedomain.ErrNoLineItems},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := f.draft()
			tc.mutate(&draft)
			_, err := f.svc.Save(ctx, draft)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, f.app.InvoiceCount(), "rejected draft must not enter the collection")
			assert.Equal(t, int64(1001), f.app.NextInvoiceNumber(), "rejected draft must not move the counter")
		})
	}
}

func TestSaveSkipsIncompleteRows(t *testing.T) {
	f := newFixture(t)

	draft := f.draft()
	draft.Lines = append(draft.Lines,
		invoicedomain.DraftLine{},                                      // empty trailing row
		invoicedomain.DraftLine{ItemID: f.item.ID, Rate: decimal.NewFromInt(5)}, // no quantity
	)

	res, err := f.svc.Save(context.Background(), draft)
	require.NoError(t, err)
	assert.Len(t, res.Invoice.Items, 1, "incomplete rows are dropped, not rejected")
}

func TestSaveNegativeReceivedClampedToZero(t *testing.T) {
	f := newFixture(t)

	draft := f.draft()
	draft.Received = decimal.NewFromInt(-40)

	res, err := f.svc.Save(context.Background(), draft)
	require.NoError(t, err)
	assert.True(t, res.Invoice.Received.IsZero())
	assert.True(t, res.Invoice.Balance.Equal(decimal.NewFromInt(236)), "balance %s", res.Invoice.Balance)
}

func TestManualNumberReseedsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft()
	draft.InvoiceNumber = "2050"
	_, err := f.svc.Save(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(2051), f.app.NextInvoiceNumber())

	next, err := f.svc.CreateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2051", next.InvoiceNumber)

	// a manual number can move the sequence backwards
	draft = f.draft()
	draft.InvoiceNumber = "1500"
	_, err = f.svc.Save(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1501), f.app.NextInvoiceNumber())
}

func TestListOrdersByNumericNumberDescending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, number := range []string{"1001", "2050", "PROFORMA-7", "1500"} {
		draft := f.draft()
		draft.InvoiceNumber = number
		_, err := f.svc.Save(ctx, draft)
		require.NoError(t, err)
		f.clock.Advance(time.Second)
	}

	listed := f.svc.List(ctx)
	require.Len(t, listed, 4)
	numbers := make([]string, 0, len(listed))
	for _, inv := range listed {
		numbers = append(numbers, inv.InvoiceNumber)
	}
	// non-numeric sorts as 1000, below every issued number
	assert.Equal(t, []string{"2050", "1500", "1001", "PROFORMA-7"}, numbers)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Save(ctx, f.draft())
	require.NoError(t, err)
	id := res.Invoice.ID

	declined, err := f.svc.Delete(ctx, id, false)
	require.NoError(t, err, "a declined confirmation is a no-op, not an error")
	assert.False(t, declined.Deleted)
	assert.Equal(t, 1, f.app.InvoiceCount())

	deleted, err := f.svc.Delete(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, "1001", deleted.Invoice.InvoiceNumber)
	assert.Zero(t, f.app.InvoiceCount())

	_, err = f.svc.Delete(ctx, id, true)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestRenderResolvesView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Save(ctx, f.draft())
	require.NoError(t, err)

	doc, err := f.svc.Render(ctx, res.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice_1001_2026-08-29.pdf", doc.Filename)
	assert.NotEmpty(t, doc.Content)

	view := f.renderer.view
	require.NotNil(t, view.Party)
	assert.Equal(t, "Acme Traders", view.Party.Name)
	assert.Equal(t, "236.00", view.Total)
	assert.Equal(t, "186.00", view.Balance)
	assert.Equal(t, "Two Hundred Thirty Six Rupees only", view.AmountInWords)

	require.Len(t, view.Lines, 1)
	line := view.Lines[0]
	assert.Equal(t, 1, line.Index)
	assert.Equal(t, "Cement Bag", line.Name)
	assert.Equal(t, "2523", line.HSN)
	assert.Equal(t, "Nos", line.Unit)
	assert.Equal(t, "100.00", line.Rate)
	assert.Equal(t, "36.00 (18%)", line.GST)
	assert.Equal(t, "236.00", line.Amount)
}

func TestRenderFallsBackToSnapshotsWhenCatalogGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Save(ctx, f.draft())
	require.NoError(t, err)

	// rebuild the working set without party or item; the saved snapshot
	// must still render
	invoices := f.app.Invoices()
	f.app.Load(nil, nil, invoices, f.app.NextInvoiceNumber())

	doc, err := f.svc.Render(ctx, res.Invoice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)

	view := f.renderer.view
	assert.Nil(t, view.Party)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Cement Bag", view.Lines[0].Name, "name came from the line snapshot")
	assert.Equal(t, "Nos", view.Lines[0].Unit, "unit defaults when the item is gone")
}

func TestRenderFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Save(ctx, f.draft())
	require.NoError(t, err)

	f.renderer.err = errors.New("font missing")
	_, err = f.svc.Render(ctx, res.Invoice.ID)
	assert.ErrorIs(t, err, invoicedomain.ErrRender)
	assert.Equal(t, 1, f.app.InvoiceCount(), "a failed render never touches the invoice")

	f.renderer.err = nil
	doc, err := f.svc.Render(ctx, res.Invoice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}

func TestRenderUnknownInvoice(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Render(context.Background(), snowflake.ID(999))
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}
