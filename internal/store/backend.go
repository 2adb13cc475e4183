// Package store is the persistence gateway: a two-tier strategy over a
// remote backend and a local on-device fallback. Both backends persist the
// same logical records under different schemas; each normalizes to the
// canonical domain types before anything else sees the data.
package store

import (
	"context"

	"github.com/bwmarrin/snowflake"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// Backend is one storage tier. Listing returns records owned by userID in
// creation order, newest first. Add returns the stored record with its
// assigned id. DeleteInvoice is idempotent.
type Backend interface {
	Name() string

	ListParties(ctx context.Context, userID string) ([]catalogdomain.Party, error)
	AddParty(ctx context.Context, userID string, party catalogdomain.Party) (catalogdomain.Party, error)

	ListItems(ctx context.Context, userID string) ([]catalogdomain.Item, error)
	AddItem(ctx context.Context, userID string, item catalogdomain.Item) (catalogdomain.Item, error)

	ListInvoices(ctx context.Context, userID string) ([]invoicedomain.Invoice, error)
	AddInvoice(ctx context.Context, userID string, invoice invoicedomain.Invoice) (invoicedomain.Invoice, error)
	DeleteInvoice(ctx context.Context, userID string, id snowflake.ID) error

	// NextInvoiceNumber derives max(existing)+1 for the user, defaulting to
	// the seed when no invoices exist. Non-numeric numbers count as seed-1.
	NextInvoiceNumber(ctx context.Context, userID string) (int64, error)
}
