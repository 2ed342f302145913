package actionview

import (
	"testing"

	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/corestack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

func newTestService(t *testing.T, config stackconfig.Config, flags stackconfig.GlobalFlags) *Service {
	t.Helper()
	registry := corestack.NewRegistry()
	if err := registry.Register(corestack.Definition{Key: "tarot", Config: config}); err != nil {
		t.Fatal(err)
	}
	return NewService(registry, func() stackconfig.GlobalFlags { return flags })
}

func TestActionGroupDetailsDefaults(t *testing.T) {
	svc := newTestService(t, nil, stackconfig.DefaultGlobalFlags())

	view := svc.ActionGroupDetails("tarot", action.GroupPlayCard)
	if view == nil {
		t.Fatal("nil view for known group")
	}
	if !view.Used {
		t.Error("group with all-default entries should be used")
	}
	for _, entry := range view.Entries {
		if !entry.Enabled {
			t.Errorf("%s disabled under defaults", entry.Signature)
		}
		if entry.NameKey != view.NameKey {
			t.Errorf("%s name key = %q, want group fallback %q", entry.Signature, entry.NameKey, view.NameKey)
		}
	}
}

func TestActionGroupDetailsStoredDisable(t *testing.T) {
	disabled := action.Signature{Group: action.GroupPlayCard, From: stack.TargetPlayerHand, Target: stack.TargetDiscard}
	svc := newTestService(t, stackconfig.Config{disabled: false}, stackconfig.DefaultGlobalFlags())

	view := svc.ActionGroupDetails("tarot", action.GroupPlayCard)
	for _, entry := range view.Entries {
		want := entry.Signature != disabled.String()
		if entry.Enabled != want {
			t.Errorf("%s enabled = %v, want %v", entry.Signature, entry.Enabled, want)
		}
	}
	if !view.Used {
		t.Error("group with remaining enabled entries should stay used")
	}
}

func TestActionGroupDetailsGlobalOverride(t *testing.T) {
	flags := stackconfig.GlobalFlags{HandStacksEnabled: false, RevealStacksEnabled: true}
	svc := newTestService(t, nil, flags)

	view := svc.ActionGroupDetails("tarot", action.GroupRevealCard)
	if view.Used {
		t.Error("every reveal entry touches a hand, group should be unused")
	}
	for _, entry := range view.Entries {
		if entry.Enabled {
			t.Errorf("%s enabled despite hand stacks off", entry.Signature)
		}
	}
}

func TestActionGroupDetailsUnknownGroup(t *testing.T) {
	svc := newTestService(t, nil, stackconfig.DefaultGlobalFlags())
	if view := svc.ActionGroupDetails("tarot", action.GroupID("teleportCard")); view != nil {
		t.Fatalf("expected nil view, got %+v", view)
	}
}

func TestAllGroupsDetailsCoversCatalog(t *testing.T) {
	svc := newTestService(t, nil, stackconfig.DefaultGlobalFlags())
	views := svc.AllGroupsDetails("tarot")
	if len(views) != len(action.Groups()) {
		t.Fatalf("views = %d, want %d", len(views), len(action.Groups()))
	}
	// Projection is idempotent: rendering twice yields the same result.
	again := svc.AllGroupsDetails("tarot")
	for i := range views {
		if views[i].ID != again[i].ID || views[i].Used != again[i].Used {
			t.Errorf("group %s differs between renders", views[i].ID)
		}
	}
}

func TestStackConfigUnknownKeyFallsBack(t *testing.T) {
	svc := newTestService(t, stackconfig.Config{}, stackconfig.DefaultGlobalFlags())
	config := svc.StackConfig("no-such-deck")
	if len(config) != 0 {
		t.Fatalf("expected empty config, got %v", config)
	}
	sig := action.Signature{Group: action.GroupDrawCard, From: stack.TargetDeck, Target: stack.TargetPlayerHand}
	if !stackconfig.DefaultFill(config, sig) {
		t.Error("empty config should resolve permissively")
	}
}
