// Package local is the on-device fallback store: one JSON snapshot per user
// on disk, read whole on first use and rewritten whole on every mutation.
// Its wire schema uses camelCase field names; the remote store uses
// snake_case. Mapping between schemas lives in records.go, so callers only
// ever see canonical domain values.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// Store persists per-user snapshots under dir. Ids are assigned client-side
// from the snowflake node, which is wall-clock derived and monotonic within
// a session.
type Store struct {
	mu    sync.Mutex
	dir   string
	genID *snowflake.Node
}

func New(dir string, genID *snowflake.Node) *Store {
	return &Store{dir: dir, genID: genID}
}

func (s *Store) Name() string { return "local" }

func (s *Store) ListParties(ctx context.Context, userID string) ([]catalogdomain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	parties := make([]catalogdomain.Party, 0, len(snap.Parties))
	for _, rec := range snap.Parties {
		parties = append(parties, rec.toDomain())
	}
	sortNewestFirst(parties, func(p catalogdomain.Party) int64 { return p.CreatedAt.UnixNano() })
	return parties, nil
}

func (s *Store) AddParty(ctx context.Context, userID string, party catalogdomain.Party) (catalogdomain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return catalogdomain.Party{}, err
	}

	party.ID = s.genID.Generate()
	snap.Parties = append(snap.Parties, partyRecordFromDomain(party))
	if err := s.save(userID, snap); err != nil {
		return catalogdomain.Party{}, err
	}
	return party, nil
}

func (s *Store) ListItems(ctx context.Context, userID string) ([]catalogdomain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	items := make([]catalogdomain.Item, 0, len(snap.Items))
	for _, rec := range snap.Items {
		items = append(items, rec.toDomain())
	}
	sortNewestFirst(items, func(i catalogdomain.Item) int64 { return i.CreatedAt.UnixNano() })
	return items, nil
}

func (s *Store) AddItem(ctx context.Context, userID string, item catalogdomain.Item) (catalogdomain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return catalogdomain.Item{}, err
	}

	item.ID = s.genID.Generate()
	snap.Items = append(snap.Items, itemRecordFromDomain(item))
	if err := s.save(userID, snap); err != nil {
		return catalogdomain.Item{}, err
	}
	return item, nil
}

func (s *Store) ListInvoices(ctx context.Context, userID string) ([]invoicedomain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(snap.Invoices))
	for _, rec := range snap.Invoices {
		invoices = append(invoices, rec.toDomain())
	}
	sortNewestFirst(invoices, func(i invoicedomain.Invoice) int64 { return i.CreatedAt.UnixNano() })
	return invoices, nil
}

func (s *Store) AddInvoice(ctx context.Context, userID string, invoice invoicedomain.Invoice) (invoicedomain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoice.ID = s.genID.Generate()
	snap.Invoices = append(snap.Invoices, invoiceRecordFromDomain(invoice))
	// Saving permanently re-seeds the sequence from the submitted number,
	// even backwards. Duplicates are an accepted consequence.
	snap.NextInvoiceID = invoice.NumericNumber() + 1
	if err := s.save(userID, snap); err != nil {
		return invoicedomain.Invoice{}, err
	}
	return invoice, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, userID string, id snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return err
	}

	kept := snap.Invoices[:0]
	for _, rec := range snap.Invoices {
		if rec.ID != id.Int64() {
			kept = append(kept, rec)
		}
	}
	snap.Invoices = kept
	return s.save(userID, snap)
}

func (s *Store) NextInvoiceNumber(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(userID)
	if err != nil {
		return 0, err
	}
	return snap.nextInvoiceNumber(), nil
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("ivoice_db_%s.json", userID))
}

func (s *Store) load(userID string) (*snapshot, error) {
	raw, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode local snapshot: %w", err)
	}
	// Older snapshots may predate the counter; derive it from the invoices
	// rather than trusting an absent value.
	if snap.NextInvoiceID == 0 {
		snap.NextInvoiceID = snap.nextInvoiceNumber()
	}
	return &snap, nil
}

func (s *Store) save(userID string, snap *snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create local store dir: %w", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(userID), raw, 0o644); err != nil {
		return fmt.Errorf("write local snapshot: %w", err)
	}
	return nil
}

func sortNewestFirst[T any](items []T, key func(T) int64) {
	sort.SliceStable(items, func(a, b int) bool {
		return key(items[a]) > key(items[b])
	})
}
