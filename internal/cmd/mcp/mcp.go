// Package mcp parses MCP command flags and serves the card table over MCP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	platformcmd "github.com/louisbranch/cardtable/internal/platform/cmd"
	"github.com/louisbranch/cardtable/internal/platform/config"
	mcpservice "github.com/louisbranch/cardtable/internal/mcp/service"
	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/domain/corestack"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
	"github.com/louisbranch/cardtable/internal/services/table/storage/memory"
	"github.com/louisbranch/cardtable/internal/services/table/storage/sqlite"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath    string `env:"CARDTABLE_DB_PATH"`
	HTTPAddr  string `env:"CARDTABLE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"CARDTABLE_MCP_TRANSPORT" envDefault:"stdio"`
	Locale    string `env:"CARDTABLE_LOCALE"        envDefault:"en-US"`
	Seed      int64  `env:"CARDTABLE_SHUFFLE_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "settings database path (empty for in-memory)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for the table feed")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "shuffle seed (0 uses the current time)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	logger := log.Default()

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer store.Close()

	appSvc := app.New(store, logger)
	if err := appSvc.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap table settings: %w", err)
	}
	if err := appSvc.RegisterCoreStack(ctx, corestack.Definition{
		Key:          standardDeckKey,
		LabelBaseKey: "core.deck.standard",
	}); err != nil {
		return fmt.Errorf("register deck kind: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table := containers.NewTable(seed)
	cards, err := standardDeckCards()
	if err != nil {
		return fmt.Errorf("build deck: %w", err)
	}
	if _, _, err := table.AddDeck(standardDeckKey, "Standard Deck", cards); err != nil {
		return fmt.Errorf("add deck: %w", err)
	}
	if _, _, err := table.AddGMArea("GM"); err != nil {
		return fmt.Errorf("add GM area: %w", err)
	}

	transfers := transfer.NewService(table, table, table, audit.NewEmitter(store), logger)

	return mcpservice.Run(ctx, mcpservice.Deps{
		App:       appSvc,
		Transfers: transfers,
		Table:     table,
		Audit:     store,
	}, mcpservice.Config{
		Transport: mcpservice.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
		Locale:    cfg.Locale,
	})
}

// openStore opens the sqlite settings store, or an in-memory store when no
// path is configured.
func openStore(path string) (storage.Store, error) {
	if path == "" {
		return memory.New(), nil
	}
	return sqlite.Open(path)
}
