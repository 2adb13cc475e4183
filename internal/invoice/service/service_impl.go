package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/clock"
	"github.com/smallbiznis/ivoice/internal/invoice/calc"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
	"github.com/smallbiznis/ivoice/internal/invoice/words"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
)

type ServiceParam struct {
	fx.In

	App      *state.App
	Catalog  catalogdomain.Service
	Gateway  *store.Gateway
	Clock    clock.Clock
	Renderer invoicedomain.DocumentRenderer
	Log      *zap.Logger
}

type Service struct {
	app      *state.App
	catalog  catalogdomain.Service
	gateway  *store.Gateway
	clock    clock.Clock
	renderer invoicedomain.DocumentRenderer
	log      *zap.Logger
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		app:      p.App,
		catalog:  p.Catalog,
		gateway:  p.Gateway,
		clock:    p.Clock,
		renderer: p.Renderer,
		log:      p.Log.Named("invoice.service"),
	}
}

// CreateDraft seeds a fresh composition: the current counter value as the
// number, today's date, credit payment, nothing received, one empty row.
func (s *Service) CreateDraft(ctx context.Context) (invoicedomain.Draft, error) {
	return invoicedomain.Draft{
		InvoiceNumber: fmt.Sprintf("%d", s.app.NextInvoiceNumber()),
		Date:          s.clock.Now().Format("2006-01-02"),
		PaymentType:   invoicedomain.PaymentTypeCredit,
		Received:      decimal.Zero,
		Lines:         []invoicedomain.DraftLine{{}},
	}, nil
}

func (s *Service) Save(ctx context.Context, draft invoicedomain.Draft) (invoicedomain.SaveResult, error) {
	number := strings.TrimSpace(draft.InvoiceNumber)
	switch {
	case draft.PartyID == 0:
		return invoicedomain.SaveResult{}, invoicedomain.ErrMissingParty
	case strings.TrimSpace(draft.Date) == "":
		return invoicedomain.SaveResult{}, invoicedomain.ErrMissingDate
	case number == "":
		return invoicedomain.SaveResult{}, invoicedomain.ErrMissingNumber
	}

	// Incomplete rows are skipped, not rejected; only a draft with no
	// complete row at all fails validation.
	lines := make([]invoicedomain.LineItem, 0, len(draft.Lines))
	for _, dl := range draft.Lines {
		var item *catalogdomain.Item
		if found, ok := s.catalog.FindItem(dl.ItemID); ok {
			item = &found
		}
		if line, ok := calc.ComputeLine(dl, item); ok {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return invoicedomain.SaveResult{}, invoicedomain.ErrNoLineItems
	}

	received := draft.Received
	if received.IsNegative() {
		received = decimal.Zero
	}
	totals := calc.ComputeTotals(lines, received)

	paymentType := draft.PaymentType
	if paymentType == "" {
		paymentType = invoicedomain.PaymentTypeCredit
	}

	invoice := invoicedomain.Invoice{
		InvoiceNumber: number,
		PartyID:       draft.PartyID,
		Date:          strings.TrimSpace(draft.Date),
		PaymentType:   paymentType,
		PONumber:      strings.TrimSpace(draft.PONumber),
		PODate:        strings.TrimSpace(draft.PODate),
		EWayBill:      strings.TrimSpace(draft.EWayBill),
		Items:         lines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Received:      received,
		Balance:       totals.Balance,
		Paid:          totals.Paid,
		CreatedAt:     s.clock.Now(),
	}

	res, err := s.gateway.AddInvoice(ctx, s.app.User().ID, invoice)
	if err != nil {
		return invoicedomain.SaveResult{}, err
	}
	s.app.SetOffline(res.Degraded)
	s.app.AddInvoice(res.Value)

	// The submitted number re-seeds the sequence, manual or not. A manual
	// number may move it backwards; duplicates are accepted by design.
	s.app.SetNextInvoiceNumber(invoicedomain.ParseInvoiceNumber(number) + 1)

	s.log.Info("invoice saved",
		zap.Int64("invoice_id", res.Value.ID.Int64()),
		zap.String("invoice_number", number),
		zap.String("source", string(res.Source)),
	)
	return invoicedomain.SaveResult{Invoice: res.Value, Degraded: res.Degraded}, nil
}

// List returns saved invoices ordered by numeric invoice number, newest
// numbering first.
func (s *Service) List(ctx context.Context) []invoicedomain.Invoice {
	invoices := s.app.Invoices()
	sort.SliceStable(invoices, func(a, b int) bool {
		return invoices[a].NumericNumber() > invoices[b].NumericNumber()
	})
	return invoices
}

func (s *Service) Find(id snowflake.ID) (invoicedomain.Invoice, bool) {
	return s.app.FindInvoice(id)
}

// Delete removes a saved invoice. An unconfirmed request is a no-op, not an
// error; the working set shrinks only after the gateway call resolves.
func (s *Service) Delete(ctx context.Context, id snowflake.ID, confirmed bool) (invoicedomain.DeleteResult, error) {
	invoice, ok := s.app.FindInvoice(id)
	if !ok {
		return invoicedomain.DeleteResult{}, invoicedomain.ErrNotFound
	}
	if !confirmed {
		return invoicedomain.DeleteResult{Invoice: invoice}, nil
	}

	res, err := s.gateway.DeleteInvoice(ctx, s.app.User().ID, id)
	if err != nil {
		return invoicedomain.DeleteResult{}, err
	}
	s.app.SetOffline(res.Degraded)
	s.app.RemoveInvoice(id)

	s.log.Info("invoice deleted",
		zap.Int64("invoice_id", id.Int64()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("source", string(res.Source)),
	)
	return invoicedomain.DeleteResult{Deleted: true, Invoice: invoice, Degraded: res.Degraded}, nil
}

// Render resolves the invoice into a display-ready view and hands it to the
// Document Renderer. Renderer failures surface as ErrRender; the invoice is
// untouched and rendering can be retried.
func (s *Service) Render(ctx context.Context, id snowflake.ID) (invoicedomain.RenderedDocument, error) {
	invoice, ok := s.app.FindInvoice(id)
	if !ok {
		return invoicedomain.RenderedDocument{}, invoicedomain.ErrNotFound
	}

	view := s.resolve(invoice)
	content, err := s.renderer.Render(ctx, view)
	if err != nil {
		s.log.Warn("document render failed",
			zap.Int64("invoice_id", id.Int64()),
			zap.Error(err),
		)
		return invoicedomain.RenderedDocument{}, fmt.Errorf("%w: %v", invoicedomain.ErrRender, err)
	}

	return invoicedomain.RenderedDocument{
		Filename: fmt.Sprintf("Invoice_%s_%s.pdf", invoice.InvoiceNumber, invoice.Date),
		Content:  content,
	}, nil
}

// resolve joins the invoice against the current catalog, falling back to
// the per-line snapshots when the source records are gone.
func (s *Service) resolve(invoice invoicedomain.Invoice) invoicedomain.RenderView {
	var party *catalogdomain.Party
	if found, ok := s.catalog.FindParty(invoice.PartyID); ok {
		party = &found
	}

	lines := make([]invoicedomain.RenderLine, 0, len(invoice.Items))
	for idx, li := range invoice.Items {
		name := li.Name
		unit := "Nos"
		if item, ok := s.catalog.FindItem(li.ItemID); ok {
			if name == "" {
				name = item.Name
			}
			if item.Unit != "" {
				unit = item.Unit
			}
		}
		if name == "" {
			name = "N/A"
		}
		hsn := li.HSN
		if hsn == "" {
			hsn = "N/A"
		}

		lineTax := li.Total.Mul(li.GSTRate).Shift(-2)
		lines = append(lines, invoicedomain.RenderLine{
			Index:  idx + 1,
			Name:   name,
			HSN:    hsn,
			Qty:    li.Qty.String(),
			Unit:   unit,
			Rate:   calc.Display(li.Rate),
			GST:    fmt.Sprintf("%s (%s%%)", calc.Display(lineTax), li.GSTRate.String()),
			Amount: calc.Display(li.Total.Add(lineTax)),
		})
	}

	return invoicedomain.RenderView{
		Invoice:       invoice,
		Party:         party,
		Lines:         lines,
		Subtotal:      calc.Display(invoice.Subtotal),
		Tax:           calc.Display(invoice.Tax),
		Total:         calc.Display(invoice.Total),
		Received:      calc.Display(invoice.Received),
		Balance:       calc.Display(invoice.Balance),
		AmountInWords: words.AmountInWords(invoice.Total.IntPart()),
	}
}
