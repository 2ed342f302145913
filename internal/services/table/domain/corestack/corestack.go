package corestack

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

// Definition declares one deck kind: its key, resource bases for labels and
// card faces, an optional card behavior, and the per-deck action matrix.
type Definition struct {
	Key          string
	LabelBaseKey string
	ResourceBase string
	Behavior     stack.CardBehavior
	Config       stackconfig.Config
	Parameters   map[string]any
}

// Registry holds the live core stack definitions, exactly one per key.
// It is process-wide state: initialized once during startup composition and
// reloaded as a unit when the settings store changes.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: map[string]Definition{}}
}

// Register declares a deck kind. Registering an already-declared key is a
// caller error.
func (r *Registry) Register(definition Definition) error {
	key := strings.TrimSpace(definition.Key)
	if key == "" {
		return apperrors.New(apperrors.CodeCoreStackKeyEmpty, "core stack key is required")
	}
	definition.Key = key
	if definition.Behavior == nil {
		definition.Behavior = stack.NoopBehavior{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[key]; exists {
		return apperrors.WithMetadata(
			apperrors.CodeCoreStackDuplicate,
			"core stack is already declared",
			map[string]string{"Key": key},
		)
	}
	r.definitions[key] = definition
	return nil
}

// Unregister removes a deck kind declaration. Unknown keys are a no-op.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.definitions, key)
}

// Get returns the definition for a key.
func (r *Registry) Get(key string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	definition, ok := r.definitions[key]
	if !ok {
		return Definition{}, apperrors.WithMetadata(
			apperrors.CodeCoreStackUnknown,
			"core stack is not declared",
			map[string]string{"Key": key},
		)
	}
	return definition, nil
}

// Has reports whether a key is declared.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[key]
	return ok
}

// Keys returns all declared keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.definitions))
	for key := range r.definitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Behavior resolves the card behavior for a key, defaulting to the no-op
// behavior for unknown keys so card rendering never fails on a stale key.
func (r *Registry) Behavior(key string) stack.CardBehavior {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if definition, ok := r.definitions[key]; ok && definition.Behavior != nil {
		return definition.Behavior
	}
	return stack.NoopBehavior{}
}

// SetConfig replaces the action matrix of a declared deck kind.
func (r *Registry) SetConfig(key string, config stackconfig.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	definition, ok := r.definitions[key]
	if !ok {
		return apperrors.WithMetadata(
			apperrors.CodeCoreStackUnknown,
			"core stack is not declared",
			map[string]string{"Key": key},
		)
	}
	definition.Config = config
	r.definitions[key] = definition
	return nil
}

// Reset drops every declaration. Used when the registry reloads as a unit.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = map[string]Definition{}
}
