package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/invoice/calc"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// The remote schema uses snake_case columns and keeps invoice lines as a
// serialized blob rather than a child table. Like the local schema, it is
// mapped to the canonical domain types at this boundary.

type partyRow struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"not null;index"`
	Name      string    `gorm:"type:text;not null"`
	Phone     string    `gorm:"type:text"`
	Email     string    `gorm:"type:text"`
	GSTNumber string    `gorm:"column:gst_number;type:text"`
	Address   string    `gorm:"type:text"`
	State     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (partyRow) TableName() string { return "parties" }

func partyRowFromDomain(userID string, p catalogdomain.Party) partyRow {
	return partyRow{
		ID:        p.ID.Int64(),
		UserID:    userID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		GSTNumber: p.GSTNumber,
		Address:   p.Address,
		State:     p.State,
		CreatedAt: p.CreatedAt,
	}
}

func (r partyRow) toDomain() catalogdomain.Party {
	return catalogdomain.Party{
		ID:        snowflake.ID(r.ID),
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		GSTNumber: r.GSTNumber,
		Address:   r.Address,
		State:     r.State,
		CreatedAt: r.CreatedAt,
	}
}

type itemRow struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    string          `gorm:"not null;index"`
	Name      string          `gorm:"type:text;not null"`
	HSN       string          `gorm:"column:hsn;type:text"`
	Unit      string          `gorm:"type:text"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate   decimal.Decimal `gorm:"column:gst_rate;type:decimal(18,4);not null"`
	Stock     int64           `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
}

func (itemRow) TableName() string { return "items" }

func itemRowFromDomain(userID string, i catalogdomain.Item) itemRow {
	return itemRow{
		ID:        i.ID.Int64(),
		UserID:    userID,
		Name:      i.Name,
		HSN:       i.HSN,
		Unit:      i.Unit,
		Rate:      i.Rate,
		GSTRate:   i.GSTRate,
		Stock:     i.Stock,
		CreatedAt: i.CreatedAt,
	}
}

func (r itemRow) toDomain() catalogdomain.Item {
	return catalogdomain.Item{
		ID:        snowflake.ID(r.ID),
		Name:      r.Name,
		HSN:       r.HSN,
		Unit:      r.Unit,
		Rate:      r.Rate,
		GSTRate:   r.GSTRate,
		Stock:     r.Stock,
		CreatedAt: r.CreatedAt,
	}
}

// lineBlob is the serialized shape of one line inside the items column.
type lineBlob struct {
	ItemID  int64           `json:"item_id"`
	Qty     decimal.Decimal `json:"qty"`
	Rate    decimal.Decimal `json:"rate"`
	GSTRate decimal.Decimal `json:"gst_rate"`
	HSN     string          `json:"hsn,omitempty"`
	Name    string          `json:"name,omitempty"`
}

type invoiceRow struct {
	ID            int64           `gorm:"primaryKey"`
	UserID        string          `gorm:"not null;index"`
	InvoiceNumber string          `gorm:"column:invoice_number;type:text;not null"`
	PartyID       int64           `gorm:"column:party_id;not null;index"`
	Date          string          `gorm:"type:text;not null"`
	PaymentType   string          `gorm:"type:text;not null"`
	PONumber      string          `gorm:"column:po_number;type:text"`
	PODate        string          `gorm:"column:po_date;type:text"`
	EWayBill      string          `gorm:"column:eway_bill;type:text"`
	Items         string          `gorm:"type:text;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Received      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Paid          bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (invoiceRow) TableName() string { return "invoices" }

func invoiceRowFromDomain(userID string, inv invoicedomain.Invoice) (invoiceRow, error) {
	blobs := make([]lineBlob, 0, len(inv.Items))
	for _, li := range inv.Items {
		blobs = append(blobs, lineBlob{
			ItemID:  li.ItemID.Int64(),
			Qty:     li.Qty,
			Rate:    li.Rate,
			GSTRate: li.GSTRate,
			HSN:     li.HSN,
			Name:    li.Name,
		})
	}
	raw, err := json.Marshal(blobs)
	if err != nil {
		return invoiceRow{}, fmt.Errorf("serialize invoice lines: %w", err)
	}

	return invoiceRow{
		ID:            inv.ID.Int64(),
		UserID:        userID,
		InvoiceNumber: inv.InvoiceNumber,
		PartyID:       inv.PartyID.Int64(),
		Date:          inv.Date,
		PaymentType:   string(inv.PaymentType),
		PONumber:      inv.PONumber,
		PODate:        inv.PODate,
		EWayBill:      inv.EWayBill,
		Items:         string(raw),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Received:      inv.Received,
		Balance:       inv.Balance,
		Paid:          inv.Paid,
		CreatedAt:     inv.CreatedAt,
	}, nil
}

func (r invoiceRow) toDomain() (invoicedomain.Invoice, error) {
	var blobs []lineBlob
	if r.Items != "" {
		if err := json.Unmarshal([]byte(r.Items), &blobs); err != nil {
			return invoicedomain.Invoice{}, fmt.Errorf("parse invoice lines: %w", err)
		}
	}

	items := make([]invoicedomain.LineItem, 0, len(blobs))
	for _, b := range blobs {
		items = append(items, invoicedomain.LineItem{
			ItemID:  snowflake.ID(b.ItemID),
			Qty:     b.Qty,
			Rate:    b.Rate,
			Total:   b.Qty.Mul(b.Rate),
			GSTRate: b.GSTRate,
			HSN:     b.HSN,
			Name:    b.Name,
		})
	}

	totals := calc.ComputeTotals(items, r.Received)

	return invoicedomain.Invoice{
		ID:            snowflake.ID(r.ID),
		InvoiceNumber: r.InvoiceNumber,
		PartyID:       snowflake.ID(r.PartyID),
		Date:          r.Date,
		PaymentType:   invoicedomain.PaymentType(r.PaymentType),
		PONumber:      r.PONumber,
		PODate:        r.PODate,
		EWayBill:      r.EWayBill,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Received:      r.Received,
		Balance:       totals.Balance,
		Paid:          totals.Paid,
		CreatedAt:     r.CreatedAt,
	}, nil
}
