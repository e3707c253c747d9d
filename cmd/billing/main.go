package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/chatgptnotes/esic-billing/internal/bill"
	"github.com/chatgptnotes/esic-billing/internal/catalog"
	"github.com/chatgptnotes/esic-billing/internal/config"
	"github.com/chatgptnotes/esic-billing/internal/draft"
	"github.com/chatgptnotes/esic-billing/internal/letters"
	"github.com/chatgptnotes/esic-billing/internal/logger"
	"github.com/chatgptnotes/esic-billing/internal/migration"
	"github.com/chatgptnotes/esic-billing/internal/providers"
	"github.com/chatgptnotes/esic-billing/internal/server"
	"github.com/chatgptnotes/esic-billing/internal/visit"
	"github.com/chatgptnotes/esic-billing/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		bill.Module,
		visit.Module,
		catalog.Module,
		draft.Module,
		letters.Module,
		providers.Module,

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
