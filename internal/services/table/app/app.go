// Package app composes the table service: it boots storage, runs the
// configuration-format migration exactly once per version bump, builds the
// core stack registry from the persisted collection, and fans out settings
// changes to dependents.
package app

import (
	"context"
	"log"
	"sync"

	"github.com/louisbranch/cardtable/internal/services/table/actionview"
	"github.com/louisbranch/cardtable/internal/services/table/domain/corestack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/migration"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
)

// Service owns the process-wide table state. The registry is rebuilt as a
// unit whenever settings change; concurrent edits to the same deck are
// last-write-wins at the persistence layer.
type Service struct {
	store  storage.SettingsStore
	logger *log.Logger

	registry *corestack.Registry
	views    *actionview.Service

	mu          sync.Mutex
	declared    map[string]corestack.Definition
	flags       stackconfig.GlobalFlags
	subscribers []func()
}

// New wires the service. Call Bootstrap before use.
func New(store storage.SettingsStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	s := &Service{
		store:    store,
		logger:   logger,
		registry: corestack.NewRegistry(),
		declared: map[string]corestack.Definition{},
		flags:    stackconfig.DefaultGlobalFlags(),
	}
	s.views = actionview.NewService(s.registry, s.GlobalFlags)
	return s
}

// Bootstrap migrates the persisted configuration when the stored format
// version is behind, then loads flags and builds the registry. The migration
// engine itself re-transforms whatever it is given; the version tag checked
// here is what makes the upgrade run exactly once.
func (s *Service) Bootstrap(ctx context.Context) error {
	tag, err := s.store.ConfigVersion(ctx)
	if err != nil {
		return err
	}
	if tag == migration.VersionLegacy {
		if err := s.migrateLegacy(ctx); err != nil {
			return err
		}
	}

	flags, err := s.store.GlobalFlags(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.flags = flags
	s.mu.Unlock()

	return s.reloadRegistry(ctx)
}

func (s *Service) migrateLegacy(ctx context.Context) error {
	collection, err := s.store.LoadCollection(ctx)
	if err != nil {
		return err
	}

	legacy := make(migration.LegacyCollection, len(collection))
	for coreKey, stored := range collection {
		legacy[coreKey] = legacyFromStored(stored)
	}

	migrated, next, warnings := migration.Migrate(legacy)
	for _, warning := range warnings {
		s.logger.Printf("migration: deck %s flag %s has no mapping, dropped", warning.CoreKey, warning.Flag)
	}

	if err := s.store.SaveCollection(ctx, migrated); err != nil {
		return err
	}
	if err := s.store.SetConfigVersion(ctx, next); err != nil {
		return err
	}
	s.logger.Printf("migrated stack configuration to %s (%d decks, %d warnings)", next, len(migrated), len(warnings))
	return nil
}

// legacyFromStored reinterprets a flat stored stack as the legacy shape. In
// the legacy format every non-reserved key is a coarse flag, which the
// flat decoder already collected as booleans.
func legacyFromStored(stored stackconfig.StoredStack) migration.LegacyStack {
	return migration.LegacyStack{
		Confs:      stored.Actions,
		Parameters: stored.Parameters,
		Rollback:   stored.Rollback,
	}
}

// RegisterCoreStack declares a deck kind. Called during startup composition
// by built-in and external hooks; the stored configuration for the key, if
// any, takes precedence over the definition's own.
func (s *Service) RegisterCoreStack(ctx context.Context, definition corestack.Definition) error {
	s.mu.Lock()
	s.declared[definition.Key] = definition
	s.mu.Unlock()

	collection, err := s.store.LoadCollection(ctx)
	if err != nil {
		return err
	}
	if stored, ok := collection[definition.Key]; ok {
		config, skipped := stored.Config()
		for _, raw := range skipped {
			s.logger.Printf("deck %s: skipping unparseable signature %q", definition.Key, raw)
		}
		definition.Config = config
	}

	s.registry.Unregister(definition.Key)
	return s.registry.Register(definition)
}

// UnregisterCoreStack removes a declared deck kind from the registry.
func (s *Service) UnregisterCoreStack(key string) {
	s.mu.Lock()
	delete(s.declared, key)
	s.mu.Unlock()
	s.registry.Unregister(key)
}

// reloadRegistry rebuilds the registry as a unit from declared definitions
// and the persisted collection. Keys present only in storage get a bare
// definition so their configuration still renders.
func (s *Service) reloadRegistry(ctx context.Context) error {
	collection, err := s.store.LoadCollection(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	declared := make([]corestack.Definition, 0, len(s.declared))
	for _, definition := range s.declared {
		declared = append(declared, definition)
	}
	s.mu.Unlock()

	s.registry.Reset()
	seen := map[string]bool{}
	for _, definition := range declared {
		if stored, ok := collection[definition.Key]; ok {
			config, skipped := stored.Config()
			for _, raw := range skipped {
				s.logger.Printf("deck %s: skipping unparseable signature %q", definition.Key, raw)
			}
			definition.Config = config
		}
		if err := s.registry.Register(definition); err != nil {
			return err
		}
		seen[definition.Key] = true
	}
	for coreKey, stored := range collection {
		if seen[coreKey] {
			continue
		}
		config, skipped := stored.Config()
		for _, raw := range skipped {
			s.logger.Printf("deck %s: skipping unparseable signature %q", coreKey, raw)
		}
		if err := s.registry.Register(corestack.Definition{
			Key:        coreKey,
			Config:     config,
			Parameters: stored.Parameters,
		}); err != nil {
			return err
		}
	}
	return nil
}

// SetStackConfig persists one deck's action matrix and reloads dependents.
func (s *Service) SetStackConfig(ctx context.Context, coreKey string, config stackconfig.Config) error {
	collection, err := s.store.LoadCollection(ctx)
	if err != nil {
		return err
	}
	stored := collection.Get(coreKey)
	stored.SetConfig(config)
	if err := s.store.SaveStack(ctx, coreKey, stored); err != nil {
		return err
	}
	if err := s.reloadRegistry(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetGlobalFlags persists the table-wide capability toggles.
func (s *Service) SetGlobalFlags(ctx context.Context, flags stackconfig.GlobalFlags) error {
	if err := s.store.SetGlobalFlags(ctx, flags); err != nil {
		return err
	}
	s.mu.Lock()
	s.flags = flags
	s.mu.Unlock()
	s.notify()
	return nil
}

// GlobalFlags returns the cached table-wide capability toggles.
func (s *Service) GlobalFlags() stackconfig.GlobalFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// Subscribe registers a callback invoked after any settings change. Used by
// UI layers to refresh. Callbacks run synchronously on the mutating call.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) notify() {
	s.mu.Lock()
	subscribers := make([]func(), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}

// Registry exposes the live core stack registry.
func (s *Service) Registry() *corestack.Registry { return s.registry }

// Views exposes the read-model projections for configuration UIs.
func (s *Service) Views() *actionview.Service { return s.views }
