// Package state holds the in-memory working set for the authenticated
// user: parties, items, invoices and the invoice-number counter. It is an
// explicit value owned by the application and injected where needed; there
// is no ambient singleton. The mutex exists because HTTP handlers genuinely
// run concurrently, unlike the single-threaded surface this replaces.
package state

import (
	"sync"

	"github.com/bwmarrin/snowflake"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// User is the opaque identity supplied by the external auth collaborator.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type App struct {
	mu                sync.Mutex
	user              User
	parties           []catalogdomain.Party
	items             []catalogdomain.Item
	invoices          []invoicedomain.Invoice
	nextInvoiceNumber int64
	offline           bool
}

func New(user User) *App {
	return &App{
		user:              user,
		nextInvoiceNumber: invoicedomain.SeedInvoiceNumber,
	}
}

func (a *App) User() User { return a.user }

// Load replaces the working set with freshly listed collections.
func (a *App) Load(parties []catalogdomain.Party, items []catalogdomain.Item, invoices []invoicedomain.Invoice, nextNumber int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.parties = parties
	a.items = items
	a.invoices = invoices
	a.nextInvoiceNumber = nextNumber
}

func (a *App) Parties() []catalogdomain.Party {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]catalogdomain.Party, len(a.parties))
	copy(out, a.parties)
	return out
}

func (a *App) AddParty(p catalogdomain.Party) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.parties = append(a.parties, p)
}

func (a *App) FindParty(id snowflake.ID) (catalogdomain.Party, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.parties {
		if p.ID == id {
			return p, true
		}
	}
	return catalogdomain.Party{}, false
}

func (a *App) Items() []catalogdomain.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]catalogdomain.Item, len(a.items))
	copy(out, a.items)
	return out
}

func (a *App) AddItem(i catalogdomain.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = append(a.items, i)
}

func (a *App) FindItem(id snowflake.ID) (catalogdomain.Item, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, i := range a.items {
		if i.ID == id {
			return i, true
		}
	}
	return catalogdomain.Item{}, false
}

func (a *App) Invoices() []invoicedomain.Invoice {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]invoicedomain.Invoice, len(a.invoices))
	copy(out, a.invoices)
	return out
}

func (a *App) AddInvoice(inv invoicedomain.Invoice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invoices = append(a.invoices, inv)
}

func (a *App) FindInvoice(id snowflake.ID) (invoicedomain.Invoice, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, inv := range a.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return invoicedomain.Invoice{}, false
}

// RemoveInvoice drops the invoice from the working set, reporting whether
// it was present.
func (a *App) RemoveInvoice(id snowflake.ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for idx, inv := range a.invoices {
		if inv.ID == id {
			a.invoices = append(a.invoices[:idx], a.invoices[idx+1:]...)
			return true
		}
	}
	return false
}

func (a *App) InvoiceCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.invoices)
}

func (a *App) NextInvoiceNumber() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextInvoiceNumber
}

// SetNextInvoiceNumber re-seeds the counter. Saving always calls this with
// submitted+1, including backwards; uniqueness is deliberately not enforced.
func (a *App) SetNextInvoiceNumber(n int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextInvoiceNumber = n
}

func (a *App) Offline() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offline
}

// SetOffline latches the degraded indicator for the UI shell.
func (a *App) SetOffline(offline bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offline = offline
}
