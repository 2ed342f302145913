package corestack

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

func TestRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(Definition{Key: "tarot"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	definition, err := registry.Get("tarot")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if definition.Key != "tarot" {
		t.Fatalf("expected key tarot, got %s", definition.Key)
	}
	if definition.Behavior == nil {
		t.Fatal("expected default behavior")
	}
}

func TestRegisterRejectsDuplicateKey(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{Key: "tarot"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := registry.Register(Definition{Key: "tarot"})
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeCoreStackDuplicate {
		t.Fatalf("expected code %s, got %s", apperrors.CodeCoreStackDuplicate, domainErr.Code)
	}
}

func TestRegisterRejectsEmptyKey(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register(Definition{Key: "  "})
	if !errors.Is(err, apperrors.New(apperrors.CodeCoreStackKeyEmpty, "")) {
		t.Fatalf("expected empty-key error, got %v", err)
	}
}

func TestGetUnknownKey(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Get("missing")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeCoreStackUnknown {
		t.Fatalf("expected code %s, got %s", apperrors.CodeCoreStackUnknown, domainErr.Code)
	}
}

func TestBehaviorFallsBackToNoop(t *testing.T) {
	registry := NewRegistry()
	behavior := registry.Behavior("missing")
	if _, ok := behavior.(stack.NoopBehavior); !ok {
		t.Fatalf("expected noop behavior, got %T", behavior)
	}
}

func TestSetConfigAndReset(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Definition{Key: "tarot"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := registry.SetConfig("tarot", stackconfig.Config{}); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if err := registry.SetConfig("missing", stackconfig.Config{}); err == nil {
		t.Fatal("expected error for unknown key")
	}

	registry.Reset()
	if registry.Has("tarot") {
		t.Fatal("expected reset to drop declarations")
	}
	if len(registry.Keys()) != 0 {
		t.Fatal("expected no keys after reset")
	}
}
