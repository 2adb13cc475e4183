package local

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/invoice/calc"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// The local schema keeps the camelCase field names of the original
// on-device snapshot. It is not the canonical shape: everything is mapped
// to the domain types here, so no other package branches on schema origin.

type snapshot struct {
	Parties       []partyRecord   `json:"parties"`
	Items         []itemRecord    `json:"items"`
	Invoices      []invoiceRecord `json:"invoices"`
	NextInvoiceID int64           `json:"nextInvoiceId"`
}

func emptySnapshot() *snapshot {
	return &snapshot{
		Parties:       []partyRecord{},
		Items:         []itemRecord{},
		Invoices:      []invoiceRecord{},
		NextInvoiceID: invoicedomain.SeedInvoiceNumber,
	}
}

// nextInvoiceNumber recomputes the counter from the stored invoices. Used
// when the snapshot predates the counter field, and by NextInvoiceNumber to
// honor whatever the last save re-seeded.
func (s *snapshot) nextInvoiceNumber() int64 {
	if s.NextInvoiceID > 0 {
		return s.NextInvoiceID
	}
	max := invoicedomain.SeedInvoiceNumber - 1
	for _, rec := range s.Invoices {
		if n := invoicedomain.ParseInvoiceNumber(rec.InvoiceNumber); n > max {
			max = n
		}
	}
	return max + 1
}

type partyRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	GSTNumber string    `json:"gstNumber,omitempty"`
	Address   string    `json:"address,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func partyRecordFromDomain(p catalogdomain.Party) partyRecord {
	return partyRecord{
		ID:        p.ID.Int64(),
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		GSTNumber: p.GSTNumber,
		Address:   p.Address,
		State:     p.State,
		CreatedAt: p.CreatedAt,
	}
}

func (r partyRecord) toDomain() catalogdomain.Party {
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

type itemRecord struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	HSN       string          `json:"hsn,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
	GSTRate   decimal.Decimal `json:"gstRate"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
}

func itemRecordFromDomain(i catalogdomain.Item) itemRecord {
	return itemRecord{
		ID:        i.ID.Int64(),
		Name:      i.Name,
		HSN:       i.HSN,
		Unit:      i.Unit,
		Rate:      i.Rate,
		GSTRate:   i.GSTRate,
		Stock:     i.Stock,
		CreatedAt: i.CreatedAt,
	}
}

func (r itemRecord) toDomain() catalogdomain.Item {
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

type lineRecord struct {
	ItemID  int64           `json:"itemId"`
	Qty     decimal.Decimal `json:"qty"`
	Rate    decimal.Decimal `json:"rate"`
	Total   decimal.Decimal `json:"total"`
	GSTRate decimal.Decimal `json:"gstRate"`
	HSN     string          `json:"hsn,omitempty"`
	Name    string          `json:"name,omitempty"`
}

type invoiceRecord struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	PartyID       int64           `json:"partyId"`
	Date          string          `json:"date"`
	PaymentType   string          `json:"paymentType"`
	PONumber      string          `json:"poNumber,omitempty"`
	PODate        string          `json:"poDate,omitempty"`
	EWayBill      string          `json:"eWayBill,omitempty"`
	Items         []lineRecord    `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Received      decimal.Decimal `json:"received"`
	Balance       decimal.Decimal `json:"balance"`
	Paid          bool            `json:"paid"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func invoiceRecordFromDomain(inv invoicedomain.Invoice) invoiceRecord {
	items := make([]lineRecord, 0, len(inv.Items))
	for _, li := range inv.Items {
		items = append(items, lineRecord{
			ItemID:  li.ItemID.Int64(),
			Qty:     li.Qty,
			Rate:    li.Rate,
			Total:   li.Total,
			GSTRate: li.GSTRate,
			HSN:     li.HSN,
			Name:    li.Name,
		})
	}
	return invoiceRecord{
		ID:            inv.ID.Int64(),
		InvoiceNumber: inv.InvoiceNumber,
		PartyID:       inv.PartyID.Int64(),
		Date:          inv.Date,
		PaymentType:   string(inv.PaymentType),
		PONumber:      inv.PONumber,
		PODate:        inv.PODate,
		EWayBill:      inv.EWayBill,
		Items:         items,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Received:      inv.Received,
		Balance:       inv.Balance,
		Paid:          inv.Paid,
		CreatedAt:     inv.CreatedAt,
	}
}

func (r invoiceRecord) toDomain() invoicedomain.Invoice {
	items := make([]invoicedomain.LineItem, 0, len(r.Items))
	for _, li := range r.Items {
		line := invoicedomain.LineItem{
			ItemID:  snowflake.ID(li.ItemID),
			Qty:     li.Qty,
			Rate:    li.Rate,
			Total:   li.Qty.Mul(li.Rate),
			GSTRate: li.GSTRate,
			HSN:     li.HSN,
			Name:    li.Name,
		}
		items = append(items, line)
	}

	// Aggregates are derived, never read back from storage.
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
	}
}
