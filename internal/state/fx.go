package state

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/ivoice/internal/config"
	"github.com/smallbiznis/ivoice/internal/store"
)

func NewApp(cfg config.Config) *App {
	return New(User{ID: cfg.UserID, Name: cfg.UserName})
}

// loadUserData fills the working set from the gateway at startup, the same
// full read the original surface performed on login.
func loadUserData(lc fx.Lifecycle, app *App, gateway *store.Gateway, log *zap.Logger) {
	log = log.Named("state")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			userID := app.User().ID

			parties, err := gateway.ListParties(ctx, userID)
			if err != nil {
				return err
			}
			items, err := gateway.ListItems(ctx, userID)
			if err != nil {
				return err
			}
			invoices, err := gateway.ListInvoices(ctx, userID)
			if err != nil {
				return err
			}
			next, err := gateway.NextInvoiceNumber(ctx, userID)
			if err != nil {
				return err
			}

			app.Load(parties.Value, items.Value, invoices.Value, next.Value)

			degraded := parties.Degraded || items.Degraded || invoices.Degraded || next.Degraded
			app.SetOffline(degraded)

			log.Info("user data loaded",
				zap.String("user", app.User().Name),
				zap.Int("parties", len(parties.Value)),
				zap.Int("items", len(items.Value)),
				zap.Int("invoices", len(invoices.Value)),
				zap.Int64("next_invoice_number", next.Value),
				zap.Bool("offline", degraded),
			)
			return nil
		},
	})
}

var Module = fx.Module("state",
	fx.Provide(NewApp),
	fx.Invoke(loadUserData),
)
