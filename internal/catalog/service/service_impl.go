package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/clock"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
)

type ServiceParam struct {
	fx.In

	App     *state.App
	Gateway *store.Gateway
	Clock   clock.Clock
	Log     *zap.Logger
}

type Service struct {
	app     *state.App
	gateway *store.Gateway
	clock   clock.Clock
	log     *zap.Logger
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		app:     p.App,
		gateway: p.Gateway,
		clock:   p.Clock,
		log:     p.Log.Named("catalog.service"),
	}
}

func (s *Service) CreateParty(ctx context.Context, req catalogdomain.CreatePartyRequest) (catalogdomain.Party, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return catalogdomain.Party{}, catalogdomain.ErrNameRequired
	}

	party := catalogdomain.Party{
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		GSTNumber: strings.TrimSpace(req.GSTNumber),
		Address:   strings.TrimSpace(req.Address),
		State:     strings.TrimSpace(req.State),
		CreatedAt: s.clock.Now(),
	}

	res, err := s.gateway.AddParty(ctx, s.app.User().ID, party)
	if err != nil {
		return catalogdomain.Party{}, err
	}
	s.app.SetOffline(res.Degraded)
	s.app.AddParty(res.Value)

	s.log.Info("party created",
		zap.Int64("party_id", res.Value.ID.Int64()),
		zap.String("source", string(res.Source)),
	)
	return res.Value, nil
}

func (s *Service) ListParties(ctx context.Context) []catalogdomain.Party {
	return s.app.Parties()
}

func (s *Service) FindParty(id snowflake.ID) (catalogdomain.Party, bool) {
	return s.app.FindParty(id)
}

func (s *Service) CreateItem(ctx context.Context, req catalogdomain.CreateItemRequest) (catalogdomain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return catalogdomain.Item{}, catalogdomain.ErrNameRequired
	}
	if req.Rate.IsNegative() {
		return catalogdomain.Item{}, catalogdomain.ErrNegativeRate
	}
	if req.Stock < 0 {
		return catalogdomain.Item{}, catalogdomain.ErrNegativeStock
	}
	gstRate := req.GSTRate
	if gstRate.IsNegative() {
		return catalogdomain.Item{}, catalogdomain.ErrNegativeRate
	}
	if gstRate.IsZero() {
		gstRate = catalogdomain.DefaultGSTRate
	}

	item := catalogdomain.Item{
		Name:      name,
		HSN:       strings.TrimSpace(req.HSN),
		Unit:      strings.TrimSpace(req.Unit),
		Rate:      req.Rate,
		GSTRate:   gstRate,
		Stock:     req.Stock,
		CreatedAt: s.clock.Now(),
	}

	res, err := s.gateway.AddItem(ctx, s.app.User().ID, item)
	if err != nil {
		return catalogdomain.Item{}, err
	}
	s.app.SetOffline(res.Degraded)
	s.app.AddItem(res.Value)

	s.log.Info("item created",
		zap.Int64("item_id", res.Value.ID.Int64()),
		zap.String("source", string(res.Source)),
	)
	return res.Value, nil
}

func (s *Service) ListItems(ctx context.Context) []catalogdomain.Item {
	return s.app.Items()
}

func (s *Service) FindItem(id snowflake.ID) (catalogdomain.Item, bool) {
	return s.app.FindItem(id)
}
