// Package domain contains the canonical catalog records. Both persistence
// backends are normalized into these shapes at the store boundary.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// DefaultGSTRate applies when an item carries no explicit tax rate.
var DefaultGSTRate = decimal.NewFromInt(18)

// Party is a customer billed on invoices. Parties are create-only: no edit
// or delete path exists, so historical invoices may reference them safely.
type Party struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone,omitempty"`
	Email     string       `json:"email,omitempty"`
	GSTNumber string       `json:"gst_number,omitempty"`
	Address   string       `json:"address,omitempty"`
	State     string       `json:"state,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Item is a catalog entry. Create-only, like Party.
type Item struct {
	ID        snowflake.ID    `json:"id"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// EffectiveGSTRate returns the item's tax rate, or the default when unset.
func (i Item) EffectiveGSTRate() decimal.Decimal {
	if i.GSTRate.IsZero() {
		return DefaultGSTRate
	}
	return i.GSTRate
}
