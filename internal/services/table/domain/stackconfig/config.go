package stackconfig

import (
	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
)

// Config is the sparse per-deck action matrix. Keys absent from the map are
// offered by default; see DefaultFill.
type Config map[action.Signature]bool

// Clone returns an independent copy of the config.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for sig, enabled := range c {
		out[sig] = enabled
	}
	return out
}

// DefaultFill resolves one signature against the sparse matrix. A missing key
// means "offered": the permissive default is deliberate and carried over from
// the legacy behavior, so a catalog entry added in an upgrade is enabled for
// every existing deck until explicitly turned off.
func DefaultFill(config Config, signature action.Signature) bool {
	if config == nil {
		return true
	}
	enabled, ok := config[signature]
	if !ok {
		return true
	}
	return enabled
}

// GlobalFlags are the table-wide capability toggles. They override stored
// per-deck values: a disabled capability forces its dependent signatures off
// regardless of configuration.
type GlobalFlags struct {
	HandStacksEnabled   bool
	RevealStacksEnabled bool
}

// DefaultGlobalFlags enables both capabilities.
func DefaultGlobalFlags() GlobalFlags {
	return GlobalFlags{HandStacksEnabled: true, RevealStacksEnabled: true}
}

// ApplyGlobalOverrides returns a copy of config where every signature touching
// a disabled capability is forced to false. Signatures whose from or target is
// a hand depend on HandStacksEnabled; reveal areas depend on
// RevealStacksEnabled. The input config is not mutated.
func ApplyGlobalOverrides(config Config, flags GlobalFlags) Config {
	out := config.Clone()
	if flags.HandStacksEnabled && flags.RevealStacksEnabled {
		return out
	}
	for _, group := range action.Groups() {
		for _, entry := range group.Entries {
			if SignatureForcedOff(action.SignatureFor(group.ID, entry), flags) {
				out[action.SignatureFor(group.ID, entry)] = false
			}
		}
	}
	return out
}

// SignatureForcedOff reports whether the global flags force this signature to
// false independent of its stored value.
func SignatureForcedOff(signature action.Signature, flags GlobalFlags) bool {
	if !flags.HandStacksEnabled && (signature.From.IsHand() || signature.Target.IsHand()) {
		return true
	}
	if !flags.RevealStacksEnabled && (signature.From.IsRevealed() || signature.Target.IsRevealed()) {
		return true
	}
	return false
}

// Enabled resolves one signature through default-fill and global overrides.
func Enabled(config Config, signature action.Signature, flags GlobalFlags) bool {
	if SignatureForcedOff(signature, flags) {
		return false
	}
	return DefaultFill(config, signature)
}
