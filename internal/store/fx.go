package store

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/ivoice/internal/config"
	"github.com/smallbiznis/ivoice/internal/store/local"
	"github.com/smallbiznis/ivoice/internal/store/remote"
	"github.com/smallbiznis/ivoice/pkg/db"
)

func newRemote(cfg config.Config, genID *snowflake.Node, log *zap.Logger) *remote.Store {
	return remote.New(func() (*gorm.DB, error) { return db.Open(cfg) }, genID, log)
}

func newLocal(cfg config.Config, genID *snowflake.Node) *local.Store {
	return local.New(cfg.DataDir, genID)
}

func newGateway(r *remote.Store, l *local.Store, log *zap.Logger) *Gateway {
	return NewGateway(r, l, log)
}

var Module = fx.Module("store",
	fx.Provide(newRemote),
	fx.Provide(newLocal),
	fx.Provide(newGateway),
)
