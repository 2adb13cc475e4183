package store

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// Source identifies which tier served a gateway call.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Result wraps a gateway value with its provenance. Degraded means the
// primary failed and the fallback answered; the edge surfaces that as
// "offline mode" and the caller treats the call as successful.
type Result[T any] struct {
	Value    T
	Source   Source
	Degraded bool
}

// Gateway tries the primary backend first and falls back to the secondary
// on any error. Errors on the primary are logged, never re-raised; the two
// tiers are not reconciled afterwards, so a fallback write stays local-only.
// Fallback triggers only on an explicit error: a slow primary is waited on.
type Gateway struct {
	primary  Backend
	fallback Backend
	log      *zap.Logger
}

func NewGateway(primary, fallback Backend, log *zap.Logger) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		log:      log.Named("store.gateway"),
	}
}

func (g *Gateway) ListParties(ctx context.Context, userID string) (Result[[]catalogdomain.Party], error) {
	return try(g, "list_parties", func(b Backend) ([]catalogdomain.Party, error) {
		return b.ListParties(ctx, userID)
	})
}

func (g *Gateway) AddParty(ctx context.Context, userID string, party catalogdomain.Party) (Result[catalogdomain.Party], error) {
	return try(g, "add_party", func(b Backend) (catalogdomain.Party, error) {
		return b.AddParty(ctx, userID, party)
	})
}

func (g *Gateway) ListItems(ctx context.Context, userID string) (Result[[]catalogdomain.Item], error) {
	return try(g, "list_items", func(b Backend) ([]catalogdomain.Item, error) {
		return b.ListItems(ctx, userID)
	})
}

func (g *Gateway) AddItem(ctx context.Context, userID string, item catalogdomain.Item) (Result[catalogdomain.Item], error) {
	return try(g, "add_item", func(b Backend) (catalogdomain.Item, error) {
		return b.AddItem(ctx, userID, item)
	})
}

func (g *Gateway) ListInvoices(ctx context.Context, userID string) (Result[[]invoicedomain.Invoice], error) {
	return try(g, "list_invoices", func(b Backend) ([]invoicedomain.Invoice, error) {
		return b.ListInvoices(ctx, userID)
	})
}

func (g *Gateway) AddInvoice(ctx context.Context, userID string, invoice invoicedomain.Invoice) (Result[invoicedomain.Invoice], error) {
	return try(g, "add_invoice", func(b Backend) (invoicedomain.Invoice, error) {
		return b.AddInvoice(ctx, userID, invoice)
	})
}

func (g *Gateway) DeleteInvoice(ctx context.Context, userID string, id snowflake.ID) (Result[struct{}], error) {
	return try(g, "delete_invoice", func(b Backend) (struct{}, error) {
		return struct{}{}, b.DeleteInvoice(ctx, userID, id)
	})
}

func (g *Gateway) NextInvoiceNumber(ctx context.Context, userID string) (Result[int64], error) {
	return try(g, "next_invoice_number", func(b Backend) (int64, error) {
		return b.NextInvoiceNumber(ctx, userID)
	})
}

// try runs op against the primary, then the fallback. The returned error is
// the fallback's: a primary failure alone is a degraded success.
func try[T any](g *Gateway, op string, call func(Backend) (T, error)) (Result[T], error) {
	value, err := call(g.primary)
	if err == nil {
		return Result[T]{Value: value, Source: SourceRemote}, nil
	}

	g.log.Warn("primary store failed, falling back",
		zap.String("op", op),
		zap.String("primary", g.primary.Name()),
		zap.String("fallback", g.fallback.Name()),
		zap.Error(err),
	)

	value, err = call(g.fallback)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: value, Source: SourceLocal, Degraded: true}, nil
}
