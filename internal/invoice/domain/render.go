package domain

import (
	"context"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
)

// RenderLine is one fully resolved, display-ready table row. Values are
// preformatted strings so the renderer does no arithmetic.
type RenderLine struct {
	Index  int
	Name   string
	HSN    string
	Qty    string
	Unit   string
	Rate   string
	GST    string
	Amount string
}

// RenderView is everything the Document Renderer needs: the invoice, its
// resolved party (nil when the party no longer exists), resolved lines and
// the spoken amount.
type RenderView struct {
	Invoice       Invoice
	Party         *catalogdomain.Party
	Lines         []RenderLine
	Subtotal      string
	Tax           string
	Total         string
	Received      string
	Balance       string
	AmountInWords string
}

// DocumentRenderer produces the paginated document. Failures are surfaced
// to the user and never destructive: the invoice itself is untouched and
// rendering can simply be retried.
type DocumentRenderer interface {
	Render(ctx context.Context, view RenderView) ([]byte, error)
}
