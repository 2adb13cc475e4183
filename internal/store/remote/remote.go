// Package remote is the primary persistence backend, a network database
// reached through gorm. The connection is opened lazily so the application
// still boots when the backend is unreachable; every call then errors and
// the gateway serves from the local fallback instead.
package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

// Opener supplies the gorm connection, usually pkg/db.Open. It is retried
// on every call until it succeeds once.
type Opener func() (*gorm.DB, error)

type Store struct {
	mu    sync.Mutex
	db    *gorm.DB
	open  Opener
	genID *snowflake.Node
	log   *zap.Logger
}

func New(open Opener, genID *snowflake.Node, log *zap.Logger) *Store {
	return &Store{open: open, genID: genID, log: log.Named("store.remote")}
}

// NewWithDB wires an already open connection and migrates the schema. Used
// by tests and single-process setups.
func NewWithDB(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db, genID: genID, log: log.Named("store.remote")}, nil
}

func (s *Store) Name() string { return "remote" }

func (s *Store) conn() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open remote store: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	s.log.Info("remote store connected")
	s.db = db
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&partyRow{}, &itemRow{}, &invoiceRow{}); err != nil {
		return fmt.Errorf("migrate remote store: %w", err)
	}
	return nil
}

func (s *Store) ListParties(ctx context.Context, userID string) ([]catalogdomain.Party, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var rows []partyRow
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	parties := make([]catalogdomain.Party, 0, len(rows))
	for _, row := range rows {
		parties = append(parties, row.toDomain())
	}
	return parties, nil
}

func (s *Store) AddParty(ctx context.Context, userID string, party catalogdomain.Party) (catalogdomain.Party, error) {
	db, err := s.conn()
	if err != nil {
		return catalogdomain.Party{}, err
	}

	party.ID = s.genID.Generate()
	row := partyRowFromDomain(userID, party)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return catalogdomain.Party{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListItems(ctx context.Context, userID string) ([]catalogdomain.Item, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var rows []itemRow
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]catalogdomain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (s *Store) AddItem(ctx context.Context, userID string, item catalogdomain.Item) (catalogdomain.Item, error) {
	db, err := s.conn()
	if err != nil {
		return catalogdomain.Item{}, err
	}

	item.ID = s.genID.Generate()
	row := itemRowFromDomain(userID, item)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return catalogdomain.Item{}, err
	}
	return row.toDomain(), nil
}

func (s *Store) ListInvoices(ctx context.Context, userID string) ([]invoicedomain.Invoice, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var rows []invoiceRow
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (s *Store) AddInvoice(ctx context.Context, userID string, invoice invoicedomain.Invoice) (invoicedomain.Invoice, error) {
	db, err := s.conn()
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoice.ID = s.genID.Generate()
	row, err := invoiceRowFromDomain(userID, invoice)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return invoicedomain.Invoice{}, err
	}
	return row.toDomain()
}

func (s *Store) DeleteInvoice(ctx context.Context, userID string, id snowflake.ID) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id.Int64()).
		Delete(&invoiceRow{}).Error
}

func (s *Store) NextInvoiceNumber(ctx context.Context, userID string) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	// Numbers are free text, so the max is computed in Go rather than with
	// a CAST that every dialect would handle differently.
	var numbers []string
	if err := db.WithContext(ctx).
		Model(&invoiceRow{}).
		Where("user_id = ?", userID).
		Pluck("invoice_number", &numbers).Error; err != nil {
		return 0, err
	}

	max := invoicedomain.SeedInvoiceNumber - 1
	for _, raw := range numbers {
		if n := invoicedomain.ParseInvoiceNumber(raw); n > max {
			max = n
		}
	}
	return max + 1, nil
}
