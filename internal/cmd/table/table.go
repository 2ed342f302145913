// Package table parses table command flags and runs the settings bootstrap:
// it opens the settings store, migrates legacy configuration to the
// signature format, and reports the resulting state.
package table

import (
	"context"
	"flag"
	"fmt"
	"log"

	entrypoint "github.com/louisbranch/cardtable/internal/platform/cmd"
	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/storage/sqlite"
)

// Config holds table command configuration.
type Config struct {
	DBPath string `env:"CARDTABLE_DB_PATH" envDefault:"cardtable.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "settings database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run bootstraps the settings store and reports the table state.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTable, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer store.Close()

	svc := app.New(store, log.Default())
	if err := svc.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap table settings: %w", err)
	}

	version, err := store.ConfigVersion(ctx)
	if err != nil {
		return fmt.Errorf("read config version: %w", err)
	}
	flags := svc.GlobalFlags()
	keys := svc.Registry().Keys()

	log.Printf("settings store %s: config version %s", cfg.DBPath, version)
	log.Printf("hand stacks enabled: %t, reveal stacks enabled: %t",
		flags.HandStacksEnabled, flags.RevealStacksEnabled)
	if len(keys) == 0 {
		log.Printf("no deck kinds configured")
		return nil
	}
	for _, key := range keys {
		log.Printf("deck kind %s", key)
	}
	return nil
}
