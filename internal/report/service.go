// Package report derives the summary views offered alongside invoicing:
// overall sales, per-party outstanding balances and current inventory.
package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/state"
)

type SalesReport struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalInvoices  int             `json:"total_invoices"`
	AverageInvoice decimal.Decimal `json:"average_invoice"`
}

type PartyOutstanding struct {
	PartyID     int64           `json:"party_id"`
	PartyName   string          `json:"party_name"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type InventoryLine struct {
	ItemID int64           `json:"item_id"`
	Name   string          `json:"name"`
	Stock  int64           `json:"stock"`
	Unit   string          `json:"unit,omitempty"`
	Rate   decimal.Decimal `json:"rate"`
}

type Dashboard struct {
	Parties          int             `json:"parties"`
	Items            int             `json:"items"`
	Invoices         int             `json:"invoices"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

type Service struct {
	app *state.App
}

func NewService(app *state.App) *Service {
	return &Service{app: app}
}

func (s *Service) Sales() SalesReport {
	invoices := s.app.Invoices()

	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Total)
	}

	avg := decimal.Zero
	if len(invoices) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(invoices))))
	}

	return SalesReport{
		TotalSales:     total,
		TotalInvoices:  len(invoices),
		AverageInvoice: avg,
	}
}

// Outstanding lists parties with a positive unpaid balance. Fully settled
// parties are omitted, matching the original report.
func (s *Service) Outstanding() []PartyOutstanding {
	invoices := s.app.Invoices()

	byParty := make(map[int64]decimal.Decimal)
	for _, inv := range invoices {
		if inv.Paid {
			continue
		}
		byParty[inv.PartyID.Int64()] = byParty[inv.PartyID.Int64()].Add(inv.Balance)
	}

	out := make([]PartyOutstanding, 0, len(byParty))
	for _, party := range s.app.Parties() {
		balance, ok := byParty[party.ID.Int64()]
		if !ok || !balance.IsPositive() {
			continue
		}
		out = append(out, PartyOutstanding{
			PartyID:     party.ID.Int64(),
			PartyName:   party.Name,
			Outstanding: balance,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Outstanding.GreaterThan(out[b].Outstanding)
	})
	return out
}

// HomeDashboard aggregates the counters shown on the landing view.
func (s *Service) HomeDashboard() Dashboard {
	invoices := s.app.Invoices()

	sales := decimal.Zero
	outstanding := decimal.Zero
	for _, inv := range invoices {
		sales = sales.Add(inv.Total)
		if !inv.Paid {
			outstanding = outstanding.Add(inv.Balance)
		}
	}

	return Dashboard{
		Parties:          len(s.app.Parties()),
		Items:            len(s.app.Items()),
		Invoices:         len(invoices),
		TotalSales:       sales,
		TotalOutstanding: outstanding,
	}
}

func (s *Service) Inventory() []InventoryLine {
	items := s.app.Items()

	out := make([]InventoryLine, 0, len(items))
	for _, item := range items {
		out = append(out, inventoryLine(item))
	}
	return out
}

func inventoryLine(item catalogdomain.Item) InventoryLine {
	return InventoryLine{
		ItemID: item.ID.Int64(),
		Name:   item.Name,
		Stock:  item.Stock,
		Unit:   item.Unit,
		Rate:   item.Rate,
	}
}

var Module = fx.Module("report",
	fx.Provide(NewService),
)
