package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreatePartyRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number"`
	Address   string `json:"address"`
	State     string `json:"state"`
}

type CreateItemRequest struct {
	Name    string          `json:"name"`
	HSN     string          `json:"hsn"`
	Unit    string          `json:"unit"`
	Rate    decimal.Decimal `json:"rate"`
	GSTRate decimal.Decimal `json:"gst_rate"`
	Stock   int64           `json:"stock"`
}

// Service exposes the catalog surface: create and list only. Lookups return
// (zero, false) instead of assuming referenced records still exist.
type Service interface {
	CreateParty(ctx context.Context, req CreatePartyRequest) (Party, error)
	ListParties(ctx context.Context) []Party
	FindParty(id snowflake.ID) (Party, bool)

	CreateItem(ctx context.Context, req CreateItemRequest) (Item, error)
	ListItems(ctx context.Context) []Item
	FindItem(id snowflake.ID) (Item, bool)
}

var (
	ErrNameRequired  = errors.New("invalid_name")
	ErrNegativeRate  = errors.New("invalid_rate")
	ErrNegativeStock = errors.New("invalid_stock")
)
