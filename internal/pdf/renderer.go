// Package pdf renders resolved invoices into paginated A4 documents.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/ivoice/internal/config"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// rupee prefix for amounts; the core PDF fonts have no rupee glyph.
const cur = "Rs."

type Renderer struct {
	letterhead *config.LetterheadHolder
}

func NewRenderer(letterhead *config.LetterheadHolder) invoicedomain.DocumentRenderer {
	return &Renderer{letterhead: letterhead}
}

func (r *Renderer) Render(ctx context.Context, view invoicedomain.RenderView) ([]byte, error) {
	lh := r.letterhead.Get()
	inv := view.Invoice

	cfg := marotoconfig.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Letterhead and document title
	m.AddRow(22,
		col.New(7).Add(
			text.New(lh.CompanyName, props.Text{Size: 18, Style: fontstyle.Bold}),
			text.New(lh.TagLine, props.Text{Size: 11, Style: fontstyle.Bold, Top: 9}),
			text.New(lh.PoweredBy, props.Text{Size: 8, Top: 16}),
		),
		col.New(5).Add(
			text.New("Tax Invoice", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Invoice No: "+inv.InvoiceNumber, props.Text{Size: 9, Top: 7, Align: align.Right}),
			text.New("Date: "+inv.Date, props.Text{Size: 9, Top: 11, Align: align.Right}),
			text.New("Place of Supply: "+placeOfSupply(view), props.Text{Size: 9, Top: 15, Align: align.Right}),
		),
	)

	m.AddRows(billTo(view)...)

	// Items table
	m.AddRow(8,
		text.NewCol(1, "#", headerCell()),
		text.NewCol(3, "Item Name", headerCell()),
		text.NewCol(1, "HSN/SAC", headerCell()),
		text.NewCol(1, "Qty", headerCellRight()),
		text.NewCol(1, "Unit", headerCell()),
		text.NewCol(2, "Price/Unit", headerCellRight()),
		text.NewCol(1, "GST", headerCellRight()),
		text.NewCol(2, "Amount", headerCellRight()),
	)
	for _, line := range view.Lines {
		m.AddRow(7,
			text.NewCol(1, fmt.Sprintf("%d", line.Index), bodyCell()),
			text.NewCol(3, line.Name, bodyCell()),
			text.NewCol(1, line.HSN, bodyCell()),
			text.NewCol(1, line.Qty, bodyCellRight()),
			text.NewCol(1, line.Unit, bodyCell()),
			text.NewCol(2, cur+line.Rate, bodyCellRight()),
			text.NewCol(1, line.GST, bodyCellRight()),
			text.NewCol(2, cur+line.Amount, bodyCellRight()),
		)
	}

	// Totals block
	m.AddRow(6, col.New(12))
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Sub Total", bodyCell()),
		text.NewCol(2, cur+view.Subtotal, bodyCellRight()),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Total Tax", bodyCell()),
		text.NewCol(2, cur+view.Tax, bodyCellRight()),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Total", totalCell()),
		text.NewCol(2, cur+view.Total, totalCellRight()),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Received", bodyCell()),
		text.NewCol(2, cur+view.Received, bodyCellRight()),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Balance", totalCell()),
		text.NewCol(2, cur+view.Balance, totalCellRight()),
	)

	// Amount in words
	m.AddRow(12,
		col.New(12).Add(
			text.New("Invoice Amount In Words:", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(view.AmountInWords, props.Text{Size: 9, Top: 5}),
		),
	)

	// Terms and signatory
	termsCol := col.New(8)
	termsCol.Add(text.New("Terms and Conditions:", props.Text{Size: 9, Style: fontstyle.Bold}))
	for i, term := range lh.Terms {
		termsCol.Add(text.New(term, props.Text{Size: 8, Top: float64(5 + i*4)}))
	}
	m.AddRow(26,
		termsCol,
		col.New(4).Add(
			text.New(lh.SignedFor, props.Text{Size: 9, Align: align.Right}),
			text.New(lh.Signatory, props.Text{Size: 9, Top: 14, Align: align.Right}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func placeOfSupply(view invoicedomain.RenderView) string {
	if view.Party != nil && view.Party.State != "" {
		return view.Party.State
	}
	return "N/A"
}

func billTo(view invoicedomain.RenderView) []core.Row {
	p := view.Party

	name, address, phone, state := "N/A", "N/A", "N/A", "N/A"
	email, gstin := "", ""
	if p != nil {
		name = p.Name
		if p.Address != "" {
			address = p.Address
		}
		if p.Phone != "" {
			phone = p.Phone
		}
		if p.State != "" {
			state = p.State
		}
		email = p.Email
		gstin = p.GSTNumber
	}

	billCol := col.New(6)
	billCol.Add(text.New(name, props.Text{Size: 9, Top: 5}))
	billCol.Add(text.New(address, props.Text{Size: 9, Top: 9}))
	top := 13.0
	billCol.Add(text.New("Contact: "+phone, props.Text{Size: 9, Top: top}))
	top += 4
	if email != "" {
		billCol.Add(text.New("Email: "+email, props.Text{Size: 9, Top: top}))
		top += 4
	}
	if gstin != "" {
		billCol.Add(text.New("GSTIN: "+gstin, props.Text{Size: 9, Top: top}))
		top += 4
	}
	billCol.Add(text.New("State: "+state, props.Text{Size: 9, Top: top}))

	header := row.New(6).Add(
		text.NewCol(12, "Bill To:", props.Text{Size: 10, Style: fontstyle.Bold}),
	)
	body := row.New(40).Add(billCol, col.New(6))
	return []core.Row{header, body}
}

func headerCell() props.Text {
	return props.Text{Size: 8, Style: fontstyle.Bold}
}

func headerCellRight() props.Text {
	return props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
}

func bodyCell() props.Text {
	return props.Text{Size: 8}
}

func bodyCellRight() props.Text {
	return props.Text{Size: 8, Align: align.Right}
}

func totalCell() props.Text {
	return props.Text{Size: 9, Style: fontstyle.Bold}
}

func totalCellRight() props.Text {
	return props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
}
