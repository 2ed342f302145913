package storage

import (
	"context"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/migration"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity" states
// and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// SettingsStore owns the persisted deck configuration matrix along with the
// format-version tag and the table-wide capability flags.
type SettingsStore interface {
	// LoadCollection reads the whole persisted configuration, one entry per
	// core stack key. A fresh store yields an empty collection.
	LoadCollection(ctx context.Context) (stackconfig.Collection, error)
	// SaveCollection replaces the whole persisted configuration.
	SaveCollection(ctx context.Context, collection stackconfig.Collection) error
	// SaveStack upserts one deck's stored configuration.
	SaveStack(ctx context.Context, coreKey string, stack stackconfig.StoredStack) error
	// ConfigVersion reads the persisted format-version tag. A store that never
	// recorded one reports the legacy tag, so migration runs exactly once.
	ConfigVersion(ctx context.Context) (migration.VersionTag, error)
	// SetConfigVersion records the format-version tag.
	SetConfigVersion(ctx context.Context, tag migration.VersionTag) error
	// GlobalFlags reads the table-wide capability toggles.
	GlobalFlags(ctx context.Context) (stackconfig.GlobalFlags, error)
	// SetGlobalFlags records the table-wide capability toggles.
	SetGlobalFlags(ctx context.Context, flags stackconfig.GlobalFlags) error
}

// AuditEventStore persists the durable table feed.
type AuditEventStore interface {
	AppendAuditEvent(ctx context.Context, evt audit.Event) error
	// ListAuditEvents returns the most recent events, newest first.
	ListAuditEvents(ctx context.Context, limit int) ([]audit.Event, error)
}

// Store aggregates every persistence concern of the table service.
type Store interface {
	SettingsStore
	AuditEventStore
	Close() error
}
