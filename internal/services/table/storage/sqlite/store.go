// Package sqlite provides the SQLite-backed table store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/cardtable/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/cardtable/internal/services/table/domain/migration"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
	"github.com/louisbranch/cardtable/internal/services/table/storage/sqlite/migrations"
)

const (
	metaConfigVersion       = "config_version"
	metaHandStacksEnabled   = "hand_stacks_enabled"
	metaRevealStacksEnabled = "reveal_stacks_enabled"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides a SQLite-backed store implementing all storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens a SQLite table store at the provided path and applies embedded
// migrations before the store is handed to higher layers.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.TableFS, "table"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadCollection reads every stored stack payload.
func (s *Store) LoadCollection(ctx context.Context) (stackconfig.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT core_key, payload FROM stack_settings")
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	defer rows.Close()

	collection := stackconfig.Collection{}
	for rows.Next() {
		var coreKey, payload string
		if err := rows.Scan(&coreKey, &payload); err != nil {
			return nil, fmt.Errorf("scan stack: %w", err)
		}
		var stack stackconfig.StoredStack
		// StoredStack normalizes malformed payloads instead of failing.
		_ = json.Unmarshal([]byte(payload), &stack)
		collection[coreKey] = stack
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stacks: %w", err)
	}
	return collection, nil
}

// SaveCollection replaces the whole persisted configuration in one transaction.
func (s *Store) SaveCollection(ctx context.Context, collection stackconfig.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM stack_settings"); err != nil {
		return fmt.Errorf("clear stacks: %w", err)
	}
	now := toMillis(time.Now())
	for coreKey, stack := range collection {
		payload, err := json.Marshal(stack)
		if err != nil {
			return fmt.Errorf("marshal stack %s: %w", coreKey, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO stack_settings (core_key, payload, updated_at) VALUES (?, ?, ?)",
			coreKey, string(payload), now,
		); err != nil {
			return fmt.Errorf("insert stack %s: %w", coreKey, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// SaveStack upserts one deck's stored configuration.
func (s *Store) SaveStack(ctx context.Context, coreKey string, stack stackconfig.StoredStack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(stack)
	if err != nil {
		return fmt.Errorf("marshal stack %s: %w", coreKey, err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO stack_settings (core_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(core_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		coreKey, string(payload), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert stack %s: %w", coreKey, err)
	}
	return nil
}

// ConfigVersion reads the persisted format-version tag, defaulting to the
// legacy tag when the store predates version tracking.
func (s *Store) ConfigVersion(ctx context.Context) (migration.VersionTag, error) {
	value, err := s.getMeta(ctx, metaConfigVersion)
	if err != nil {
		return "", err
	}
	if value == "" {
		return migration.VersionLegacy, nil
	}
	return migration.VersionTag(value), nil
}

// SetConfigVersion records the format-version tag.
func (s *Store) SetConfigVersion(ctx context.Context, tag migration.VersionTag) error {
	return s.setMeta(ctx, metaConfigVersion, string(tag))
}

// GlobalFlags reads the table-wide capability toggles, defaulting both on.
func (s *Store) GlobalFlags(ctx context.Context) (stackconfig.GlobalFlags, error) {
	flags := stackconfig.DefaultGlobalFlags()
	hand, err := s.getMeta(ctx, metaHandStacksEnabled)
	if err != nil {
		return flags, err
	}
	if hand != "" {
		flags.HandStacksEnabled = hand == "true"
	}
	reveal, err := s.getMeta(ctx, metaRevealStacksEnabled)
	if err != nil {
		return flags, err
	}
	if reveal != "" {
		flags.RevealStacksEnabled = reveal == "true"
	}
	return flags, nil
}

// SetGlobalFlags records the table-wide capability toggles.
func (s *Store) SetGlobalFlags(ctx context.Context, flags stackconfig.GlobalFlags) error {
	if err := s.setMeta(ctx, metaHandStacksEnabled, boolValue(flags.HandStacksEnabled)); err != nil {
		return err
	}
	return s.setMeta(ctx, metaRevealStacksEnabled, boolValue(flags.RevealStacksEnabled))
}

// AppendAuditEvent records an operational audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, evt audit.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.EventName) == "" {
		return fmt.Errorf("event name is required")
	}
	if evt.Severity == "" {
		return fmt.Errorf("severity is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	var argsJSON []byte
	if len(evt.Record.Args) > 0 {
		payload, err := json.Marshal(evt.Record.Args)
		if err != nil {
			return fmt.Errorf("marshal audit args: %w", err)
		}
		argsJSON = payload
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO audit_events
		 (timestamp, event_name, severity, table_id, core_key, actor_kind, actor_id, message_key, args_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		toMillis(evt.Timestamp), evt.EventName, string(evt.Severity),
		toNullString(evt.TableID), toNullString(evt.CoreKey),
		toNullString(evt.ActorKind), toNullString(evt.ActorID),
		evt.Record.Key, toNullString(string(argsJSON)),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns the most recent events, newest first.
func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT timestamp, event_name, severity, table_id, core_key, actor_kind, actor_id, message_key, args_json
		 FROM audit_events ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var (
			millis   int64
			severity string
			tableID  sql.NullString
			coreKey  sql.NullString
			kind     sql.NullString
			actorID  sql.NullString
			argsJSON sql.NullString
			evt      audit.Event
		)
		if err := rows.Scan(&millis, &evt.EventName, &severity, &tableID, &coreKey, &kind, &actorID, &evt.Record.Key, &argsJSON); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		evt.Timestamp = fromMillis(millis)
		evt.Severity = audit.Severity(severity)
		evt.TableID = tableID.String
		evt.CoreKey = coreKey.String
		evt.ActorKind = kind.String
		evt.ActorID = actorID.String
		if argsJSON.Valid && argsJSON.String != "" {
			args := map[string]string{}
			if err := json.Unmarshal([]byte(argsJSON.String), &args); err == nil {
				evt.Record.Args = args
			}
		}
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}

func (s *Store) getMeta(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx, "SELECT value FROM table_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setMeta(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO table_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

func toNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func boolValue(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
