package stackconfig

import (
	"encoding/json"
	"sort"

	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
)

// Reserved object keys inside a stored stack. Every other key is an action
// signature in canonical string form.
const (
	keyParameters = "parameters"
	keyRollback   = "rollback"
)

// RollbackBlock is the verbatim pre-migration data for one format version.
// It is written once by a migration run and never mutated afterward.
type RollbackBlock struct {
	Confs      map[string]any `json:"confs"`
	Parameters map[string]any `json:"parameters"`
}

// StoredStack is the persisted configuration of one deck kind: its action
// matrix keyed by canonical signature string, free-form parameters, and the
// rollback history keyed by format-version tag.
type StoredStack struct {
	Actions    map[string]bool
	Parameters map[string]any
	Rollback   map[string]RollbackBlock
}

// Collection is the persisted store shape, one entry per core stack key.
type Collection map[string]StoredStack

// MarshalJSON renders the flat persisted shape: signature strings as direct
// keys alongside the reserved parameters and rollback keys.
func (s StoredStack) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Actions)+2)
	for sig, enabled := range s.Actions {
		out[sig] = enabled
	}
	if s.Parameters != nil {
		out[keyParameters] = s.Parameters
	}
	if s.Rollback != nil {
		out[keyRollback] = s.Rollback
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat persisted shape. Signature keys with non-bool
// values are dropped rather than failing the whole stack: a degraded default
// beats an unusable configuration panel.
func (s *StoredStack) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Malformed stack object: normalize to empty.
		*s = StoredStack{}
		return nil
	}

	out := StoredStack{Actions: map[string]bool{}}
	for key, value := range raw {
		switch key {
		case keyParameters:
			var parameters map[string]any
			if err := json.Unmarshal(value, &parameters); err == nil {
				out.Parameters = parameters
			}
		case keyRollback:
			var rollback map[string]RollbackBlock
			if err := json.Unmarshal(value, &rollback); err == nil {
				out.Rollback = rollback
			}
		default:
			var enabled bool
			if err := json.Unmarshal(value, &enabled); err == nil {
				out.Actions[key] = enabled
			}
		}
	}
	*s = out
	return nil
}

// Config parses the stored action matrix into signature keys. Unparseable
// signature strings are returned separately so callers can log and skip them.
func (s StoredStack) Config() (Config, []string) {
	config := make(Config, len(s.Actions))
	var skipped []string
	for raw, enabled := range s.Actions {
		sig, err := action.ParseSignature(raw)
		if err != nil {
			skipped = append(skipped, raw)
			continue
		}
		config[sig] = enabled
	}
	sort.Strings(skipped)
	return config, skipped
}

// SetConfig replaces the stored action matrix from parsed signatures.
func (s *StoredStack) SetConfig(config Config) {
	actions := make(map[string]bool, len(config))
	for sig, enabled := range config {
		actions[sig.String()] = enabled
	}
	s.Actions = actions
}

// Get returns the stored stack for a core key, or an empty stack when none is
// recorded. Callers apply default-fill on top.
func (c Collection) Get(coreKey string) StoredStack {
	if c == nil {
		return StoredStack{}
	}
	return c[coreKey]
}

// Clone returns a deep-enough copy for last-write-wins persistence: stack
// entries are copied, nested parameter values are shared.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for key, stack := range c {
		cloned := StoredStack{
			Actions:    make(map[string]bool, len(stack.Actions)),
			Parameters: stack.Parameters,
		}
		for sig, enabled := range stack.Actions {
			cloned.Actions[sig] = enabled
		}
		if stack.Rollback != nil {
			cloned.Rollback = make(map[string]RollbackBlock, len(stack.Rollback))
			for tag, block := range stack.Rollback {
				cloned.Rollback[tag] = block
			}
		}
		out[key] = cloned
	}
	return out
}
