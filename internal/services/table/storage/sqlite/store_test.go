package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/cardtable/internal/services/table/domain/migration"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "table.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	empty, err := store.LoadCollection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("fresh store collection = %v", empty)
	}

	saved := stackconfig.Collection{
		"tarot": {
			Actions:    map[string]bool{"playCard-PHDI": true, "drawCard-DEGH": false},
			Parameters: map[string]any{"x": float64(1)},
		},
	}
	if err := store.SaveCollection(ctx, saved); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadCollection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	stack := loaded.Get("tarot")
	if !stack.Actions["playCard-PHDI"] {
		t.Error("enabled signature lost")
	}
	if enabled, ok := stack.Actions["drawCard-DEGH"]; !ok || enabled {
		t.Error("disabled signature lost or flipped")
	}
	if stack.Parameters["x"] != float64(1) {
		t.Errorf("parameters = %v", stack.Parameters)
	}
}

func TestSaveStackUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveStack(ctx, "base", stackconfig.StoredStack{Actions: map[string]bool{"flipCard-GHGH": true}}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveStack(ctx, "base", stackconfig.StoredStack{Actions: map[string]bool{"flipCard-GHGH": false}}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadCollection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if enabled := loaded.Get("base").Actions["flipCard-GHGH"]; enabled {
		t.Error("upsert did not replace payload")
	}
}

func TestConfigVersionDefaultsLegacy(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tag, err := store.ConfigVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tag != migration.VersionLegacy {
		t.Fatalf("fresh version = %q, want %q", tag, migration.VersionLegacy)
	}

	if err := store.SetConfigVersion(ctx, migration.VersionSignatures); err != nil {
		t.Fatal(err)
	}
	tag, err = store.ConfigVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tag != migration.VersionSignatures {
		t.Fatalf("version = %q, want %q", tag, migration.VersionSignatures)
	}
}

func TestGlobalFlagsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	flags, err := store.GlobalFlags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !flags.HandStacksEnabled || !flags.RevealStacksEnabled {
		t.Fatalf("fresh flags = %+v, want both enabled", flags)
	}

	if err := store.SetGlobalFlags(ctx, stackconfig.GlobalFlags{HandStacksEnabled: false, RevealStacksEnabled: true}); err != nil {
		t.Fatal(err)
	}
	flags, err = store.GlobalFlags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if flags.HandStacksEnabled || !flags.RevealStacksEnabled {
		t.Fatalf("flags = %+v", flags)
	}
}

func TestAuditEventsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		evt := audit.Event{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			EventName: "table.transfer.draw",
			Severity:  audit.SeverityInfo,
			CoreKey:   "tarot",
			Record:    audit.NewRecord("table.audit.draw").WithNumber("1"),
		}
		if err := store.AppendAuditEvent(ctx, evt); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.ListAuditEvents(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if !events[0].Timestamp.After(events[1].Timestamp) {
		t.Errorf("events not newest first: %v then %v", events[0].Timestamp, events[1].Timestamp)
	}
	if events[0].Record.Args["{NB}"] != "1" {
		t.Errorf("args not restored: %v", events[0].Record.Args)
	}
}

func TestAppendAuditEventValidates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.AppendAuditEvent(ctx, audit.Event{Severity: audit.SeverityInfo, Record: audit.NewRecord("k")}); err == nil {
		t.Error("expected error for missing event name")
	}
	if err := store.AppendAuditEvent(ctx, audit.Event{EventName: "x", Record: audit.NewRecord("k")}); err == nil {
		t.Error("expected error for missing severity")
	}
}
