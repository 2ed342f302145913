// Package audit records the durable table feed: one entry per completed
// transfer, with localizable message keys and placeholder arguments.
package audit

import (
	"context"
	"strings"
	"time"
)

// Severity describes the audit severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Placeholder names substituted into audit message templates.
const (
	argNumber = "{NB}"
	argStack  = "{STACK}"
	argFrom   = "{FROM}"
	argCore   = "{CORE}"
)

// Record is one localizable feed entry: a message key plus the placeholder
// values its template substitutes.
type Record struct {
	Key  string
	Args map[string]string
}

// NewRecord starts a record for a message key.
func NewRecord(key string) Record {
	return Record{Key: key, Args: map[string]string{}}
}

// WithNumber fills the {NB} placeholder.
func (r Record) WithNumber(n string) Record {
	r.Args[argNumber] = n
	return r
}

// WithStack fills the {STACK} placeholder, the destination or subject stack.
func (r Record) WithStack(name string) Record {
	r.Args[argStack] = name
	return r
}

// WithFrom fills the {FROM} placeholder, the origin stack.
func (r Record) WithFrom(name string) Record {
	r.Args[argFrom] = name
	return r
}

// WithCore fills the {CORE} placeholder, the deck kind label.
func (r Record) WithCore(label string) Record {
	r.Args[argCore] = label
	return r
}

// Render expands the record's placeholders into a message template. Unknown
// placeholders in the template are left as-is.
func (r Record) Render(template string) string {
	if len(r.Args) == 0 {
		return template
	}
	pairs := make([]string, 0, len(r.Args)*2)
	for placeholder, value := range r.Args {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Event is one durable audit entry.
type Event struct {
	Timestamp time.Time
	EventName string
	Severity  Severity
	TableID   string
	CoreKey   string
	ActorKind string
	ActorID   string
	Record    Record
}

// Feed persists audit events.
type Feed interface {
	AppendAuditEvent(ctx context.Context, evt Event) error
}

// Emitter records operational audit events.
type Emitter struct {
	feed  Feed
	clock func() time.Time
}

// NewEmitter creates a new audit event emitter.
func NewEmitter(feed Feed) *Emitter {
	return &Emitter{feed: feed, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the feed is nil.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.feed == nil {
		return nil
	}
	if evt.Severity == "" {
		evt.Severity = SeverityInfo
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.feed.AppendAuditEvent(ctx, evt)
}
