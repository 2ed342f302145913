package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tablecmd "github.com/louisbranch/cardtable/internal/cmd/table"
	"github.com/louisbranch/cardtable/internal/platform/config"
)

// main bootstraps the settings store and reports the table state.
func main() {
	cfg, err := tablecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[table] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tablecmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to bootstrap table: %v", err)
	}
}
