package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// DraftLine is one user-entered invoice row before snapshotting. Rows with a
// missing item, quantity or rate are incomplete and silently skipped.
type DraftLine struct {
	ItemID snowflake.ID    `json:"item_id"`
	Qty    decimal.Decimal `json:"qty"`
	Rate   decimal.Decimal `json:"rate"`
}

// Draft is an invoice being composed. Drafts are never persisted; saving
// produces an immutable Invoice.
type Draft struct {
	InvoiceNumber string          `json:"invoice_number"`
	PartyID       snowflake.ID    `json:"party_id"`
	Date          string          `json:"date"`
	PaymentType   PaymentType     `json:"payment_type"`
	PONumber      string          `json:"po_number"`
	PODate        string          `json:"po_date"`
	EWayBill      string          `json:"eway_bill"`
	Lines         []DraftLine     `json:"lines"`
	Received      decimal.Decimal `json:"received"`
}

// SaveResult reports a persisted invoice plus whether the write landed on
// the fallback store.
type SaveResult struct {
	Invoice  Invoice
	Degraded bool
}

// RenderedDocument is the Document Renderer output.
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// Service drives the invoice lifecycle: Draft -> Saved -> Deleted. There is
// no edit path for a saved invoice.
type Service interface {
	CreateDraft(ctx context.Context) (Draft, error)
	Save(ctx context.Context, draft Draft) (SaveResult, error)
	List(ctx context.Context) []Invoice
	Find(id snowflake.ID) (Invoice, bool)
	Delete(ctx context.Context, id snowflake.ID, confirmed bool) (DeleteResult, error)
	Render(ctx context.Context, id snowflake.ID) (RenderedDocument, error)
}

// DeleteResult distinguishes an actual removal from a declined confirmation.
type DeleteResult struct {
	Deleted  bool
	Invoice  Invoice
	Degraded bool
}

var (
	ErrMissingParty  = errors.New("invalid_party")
	ErrMissingDate   = errors.New("invalid_date")
	ErrMissingNumber = errors.New("invalid_invoice_number")
	ErrNoLineItems   = errors.New("invalid_line_items")
	ErrNotFound      = errors.New("invoice_not_found")
	ErrRender        = errors.New("render_failed")
)
