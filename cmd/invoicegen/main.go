package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoicegen/internal/config"
	"github.com/smallbiznis/invoicegen/internal/invoice"
	"github.com/smallbiznis/invoicegen/internal/migration"
	"github.com/smallbiznis/invoicegen/internal/observability"
	"github.com/smallbiznis/invoicegen/internal/render"
	"github.com/smallbiznis/invoicegen/internal/server"
	"github.com/smallbiznis/invoicegen/internal/upload"
	"github.com/smallbiznis/invoicegen/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		render.Module,
		invoice.Module,
		upload.Module,
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
