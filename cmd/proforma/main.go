package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/config"
	"github.com/movelar/proforma/internal/logger"
	"github.com/movelar/proforma/internal/migration"
	"github.com/movelar/proforma/internal/server"
	"github.com/movelar/proforma/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
