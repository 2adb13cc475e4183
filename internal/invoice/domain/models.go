// Package domain contains the canonical invoice records and lifecycle
// contracts.
package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentType represents how an invoice is settled.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "Cash"
	PaymentTypeCredit PaymentType = "Credit"
)

// SeedInvoiceNumber is the first number issued when no invoices exist.
// Non-numeric stored numbers count as SeedInvoiceNumber-1 when deriving the
// next value.
const SeedInvoiceNumber int64 = 1001

// LineItem is one invoice row. Name, HSN and GSTRate are snapshotted from
// the catalog item at save time so a saved invoice renders identically even
// if the item is later edited or removed.
type LineItem struct {
	ItemID  snowflake.ID    `json:"item_id"`
	Qty     decimal.Decimal `json:"qty"`
	Rate    decimal.Decimal `json:"rate"`
	Total   decimal.Decimal `json:"total"`
	GSTRate decimal.Decimal `json:"gst_rate"`
	HSN     string          `json:"hsn,omitempty"`
	Name    string          `json:"name,omitempty"`
}

// Invoice is a saved financial document. Subtotal, Tax, Total, Balance and
// Paid are always derived from the line items and received amount; stored
// aggregates are never trusted when lines change.
type Invoice struct {
	ID            snowflake.ID    `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	PartyID       snowflake.ID    `json:"party_id"`
	Date          string          `json:"date"`
	PaymentType   PaymentType     `json:"payment_type"`
	PONumber      string          `json:"po_number,omitempty"`
	PODate        string          `json:"po_date,omitempty"`
	EWayBill      string          `json:"eway_bill,omitempty"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Received      decimal.Decimal `json:"received"`
	Balance       decimal.Decimal `json:"balance"`
	Paid          bool            `json:"paid"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NumericNumber parses the displayed invoice number for sorting and
// sequencing. Numbers are free text in manual mode, so a non-numeric value
// falls back to SeedInvoiceNumber-1 (making the next issued number the seed).
func (i Invoice) NumericNumber() int64 {
	return ParseInvoiceNumber(i.InvoiceNumber)
}

// ParseInvoiceNumber applies the non-numeric fallback shared by both
// persistence backends.
func ParseInvoiceNumber(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return SeedInvoiceNumber - 1
	}
	return n
}
