package service

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
	"github.com/louisbranch/cardtable/internal/services/table/storage/memory"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	store := memory.New()
	logger := log.New(io.Discard, "", 0)

	appSvc := app.New(store, logger)
	if err := appSvc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	table := containers.NewTable(1)
	transfers := transfer.NewService(table, table, table, audit.NewEmitter(store), logger)

	return Deps{App: appSvc, Transfers: transfers, Table: table, Audit: store}
}

func TestNewRequiresAllDependencies(t *testing.T) {
	deps := newTestDeps(t)

	cases := []struct {
		name   string
		mutate func(*Deps)
	}{
		{"missing app", func(d *Deps) { d.App = nil }},
		{"missing transfers", func(d *Deps) { d.Transfers = nil }},
		{"missing table", func(d *Deps) { d.Table = nil }},
		{"missing audit", func(d *Deps) { d.Audit = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broken := deps
			tc.mutate(&broken)
			if _, err := New(broken, ""); err == nil {
				t.Fatal("expected an error for incomplete dependencies")
			}
		})
	}
}

func TestNewBuildsServer(t *testing.T) {
	server, err := New(newTestDeps(t), "en-US")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if server == nil || server.mcpServer == nil {
		t.Fatal("expected a configured server")
	}
}

func TestConformanceEnabled(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"nope", false},
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{" true ", true},
	}
	for _, tc := range cases {
		t.Setenv(conformanceEnvVar, tc.value)
		if got := conformanceEnabled(); got != tc.want {
			t.Errorf("conformanceEnabled() with %q = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	err := Run(context.Background(), newTestDeps(t), Config{Transport: TransportKind("carrier-pigeon")})
	if err == nil {
		t.Fatal("expected an error for an unknown transport")
	}
}
