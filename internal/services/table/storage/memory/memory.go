// Package memory provides an in-process store for tests and ephemeral tables.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/cardtable/internal/services/table/domain/migration"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
)

// Store keeps every record in process memory. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	collection stackconfig.Collection
	version    migration.VersionTag
	flags      stackconfig.GlobalFlags
	hasFlags   bool
	events     []audit.Event
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collection: stackconfig.Collection{}}
}

// Seed replaces the stored collection and version tag, for test setup.
func (s *Store) Seed(collection stackconfig.Collection, tag migration.VersionTag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = collection.Clone()
	s.version = tag
}

func (s *Store) LoadCollection(ctx context.Context) (stackconfig.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Clone(), nil
}

func (s *Store) SaveCollection(ctx context.Context, collection stackconfig.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = collection.Clone()
	return nil
}

func (s *Store) SaveStack(ctx context.Context, coreKey string, stack stackconfig.StoredStack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collection == nil {
		s.collection = stackconfig.Collection{}
	}
	s.collection[coreKey] = stack
	return nil
}

func (s *Store) ConfigVersion(ctx context.Context) (migration.VersionTag, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.version == "" {
		return migration.VersionLegacy, nil
	}
	return s.version, nil
}

func (s *Store) SetConfigVersion(ctx context.Context, tag migration.VersionTag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = tag
	return nil
}

func (s *Store) GlobalFlags(ctx context.Context) (stackconfig.GlobalFlags, error) {
	if err := ctx.Err(); err != nil {
		return stackconfig.GlobalFlags{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasFlags {
		return stackconfig.DefaultGlobalFlags(), nil
	}
	return s.flags, nil
}

func (s *Store) SetGlobalFlags(ctx context.Context, flags stackconfig.GlobalFlags) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = flags
	s.hasFlags = true
	return nil
}

func (s *Store) AppendAuditEvent(ctx context.Context, evt audit.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]audit.Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

// Close is a no-op, kept for interface symmetry.
func (s *Store) Close() error { return nil }
