package cmd

import (
	"context"
	"flag"
	"testing"
)

type testConfig struct {
	DBPath string `env:"CARDTABLE_TEST_DB_PATH" envDefault:"cardtable.db"`
	Locale string `env:"CARDTABLE_TEST_LOCALE" envDefault:"en-US"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CARDTABLE_TEST_DB_PATH", "env.db")
	t.Setenv("CARDTABLE_TEST_LOCALE", "pt-BR")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "db path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale")

	if err := ParseArgs(fs, []string{"-db", "flag.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected flag value for db path, got %q", cfg.DBPath)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected env locale, got %q", cfg.Locale)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CARDTABLE_TEST_DB_PATH", "configarg.db")
	t.Setenv("CARDTABLE_TEST_LOCALE", "pt-BR")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", "", "db path")
	fs.StringVar(&cfg.Locale, "locale", "", "locale")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-db", "flagged.db"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.DBPath != "flagged.db" {
		t.Fatalf("expected parsed flag db path, got %q", cfg.DBPath)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected env locale, got %q", cfg.Locale)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(nil, "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(nil, ServiceTable, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}
