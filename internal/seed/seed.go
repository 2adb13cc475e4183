// Package seed inserts starter records on a fresh install so the first
// screens are not empty. It runs once at startup, only when enabled and
// only against an empty working set.
package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/clock"
	"github.com/smallbiznis/ivoice/internal/config"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
)

func demoParties() []catalogdomain.Party {
	return []catalogdomain.Party{
		{Name: "Sample Traders", Phone: "9876543210", GSTNumber: "27AAAAA0000A1Z5", State: "Maharashtra"},
		{Name: "Demo Enterprises", State: "Gujarat"},
	}
}

func demoItems() []catalogdomain.Item {
	return []catalogdomain.Item{
		{Name: "Cement Bag", HSN: "2523", Unit: "Nos", Rate: decimal.NewFromInt(380), GSTRate: decimal.NewFromInt(28), Stock: 100},
		{Name: "Steel Rod", HSN: "7214", Unit: "Kg", Rate: decimal.NewFromInt(62), GSTRate: decimal.NewFromInt(18), Stock: 500},
		{Name: "River Sand", HSN: "2505", Unit: "Ton", Rate: decimal.NewFromInt(1450), GSTRate: decimal.NewFromInt(5), Stock: 20},
	}
}

// Ensure writes the demo records through the gateway so they land on
// whichever store tier is reachable. A non-empty working set is left alone.
func Ensure(ctx context.Context, app *state.App, gateway *store.Gateway, clk clock.Clock, log *zap.Logger) error {
	log = log.Named("seed")

	if len(app.Parties()) > 0 || len(app.Items()) > 0 || app.InvoiceCount() > 0 {
		log.Debug("working set not empty, skipping demo seed")
		return nil
	}

	userID := app.User().ID
	for _, party := range demoParties() {
		party.CreatedAt = clk.Now()
		res, err := gateway.AddParty(ctx, userID, party)
		if err != nil {
			return err
		}
		app.SetOffline(res.Degraded)
		app.AddParty(res.Value)
	}
	for _, item := range demoItems() {
		item.CreatedAt = clk.Now()
		res, err := gateway.AddItem(ctx, userID, item)
		if err != nil {
			return err
		}
		app.SetOffline(res.Degraded)
		app.AddItem(res.Value)
	}

	log.Info("demo data seeded",
		zap.Int("parties", len(demoParties())),
		zap.Int("items", len(demoItems())),
	)
	return nil
}

type params struct {
	fx.In

	Cfg     config.Config
	App     *state.App
	Gateway *store.Gateway
	Clock   clock.Clock
	Log     *zap.Logger
}

func register(lc fx.Lifecycle, p params) {
	if !p.Cfg.SeedDemo {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return Ensure(ctx, p.App, p.Gateway, p.Clock, p.Log)
		},
	})
}

var Module = fx.Module("seed",
	fx.Invoke(register),
)
