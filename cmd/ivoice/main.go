package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ivoice/internal/clock"
	"github.com/smallbiznis/ivoice/internal/logger"
	"github.com/smallbiznis/ivoice/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
