package migration

import (
	"encoding/json"
	"sort"

	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

// VersionTag identifies one persisted configuration format version.
type VersionTag string

const (
	// VersionLegacy is the coarse boolean-per-category format.
	VersionLegacy VersionTag = "V1"
	// VersionSignatures is the per-signature matrix format.
	VersionSignatures VersionTag = "V2"
)

// LegacyStack is one deck entry in the V1 format: a flat set of coarse
// boolean flags plus free-form parameters. In V1 an absent flag means "not
// enabled", the inverse of the V2 default.
type LegacyStack struct {
	Confs      map[string]bool
	Parameters map[string]any
	Rollback   map[string]stackconfig.RollbackBlock
}

// LegacyCollection is the whole persisted V1 store shape.
type LegacyCollection map[string]LegacyStack

// UnmarshalJSON reads the flat V1 shape: flags as direct keys alongside the
// reserved parameters and rollback keys. Non-boolean flag values are dropped.
func (s *LegacyStack) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = LegacyStack{}
		return nil
	}

	out := LegacyStack{Confs: map[string]bool{}}
	for key, value := range raw {
		switch key {
		case "parameters":
			var parameters map[string]any
			if err := json.Unmarshal(value, &parameters); err == nil {
				out.Parameters = parameters
			}
		case "rollback":
			var rollback map[string]stackconfig.RollbackBlock
			if err := json.Unmarshal(value, &rollback); err == nil {
				out.Rollback = rollback
			}
		default:
			var enabled bool
			if err := json.Unmarshal(value, &enabled); err == nil {
				out.Confs[key] = enabled
			}
		}
	}
	*s = out
	return nil
}

// Warning reports one legacy flag that had no mapping and was dropped.
type Warning struct {
	CoreKey string
	Flag    string
}

func sig(group action.GroupID, from, target stack.TargetCategory) action.Signature {
	return action.Signature{Group: group, From: from, Target: target}
}

// legacyFlagSignatures is the fixed, total mapping from every V1 flag that
// ever existed onto the V2 signatures it enabled. Removed flags keep their
// entry: old installs must keep migrating cleanly.
var legacyFlagSignatures = map[string][]action.Signature{
	"fromDeckDealCardsToHand": {
		sig(action.GroupDealCard, stack.TargetDeck, stack.TargetGMHand),
		sig(action.GroupDealCard, stack.TargetDeck, stack.TargetPlayerHand),
	},
	"fromDeckDealRevealedCards": {
		sig(action.GroupDealCard, stack.TargetDeck, stack.TargetGMRevealed),
		sig(action.GroupDealCard, stack.TargetDeck, stack.TargetPlayerRevealed),
	},
	"fromDeckDrawCards": {
		sig(action.GroupDrawCard, stack.TargetDeck, stack.TargetGMHand),
		sig(action.GroupDrawCard, stack.TargetDeck, stack.TargetPlayerHand),
	},
	"fromDiscardDrawCards": {
		sig(action.GroupDrawCard, stack.TargetDiscard, stack.TargetGMHand),
		sig(action.GroupDrawCard, stack.TargetDiscard, stack.TargetPlayerHand),
	},
	"fromDeckDiscardCard": {
		sig(action.GroupDiscardCard, stack.TargetDeck, stack.TargetDiscard),
	},
	"fromHandDiscardCard": {
		sig(action.GroupDiscardCard, stack.TargetGMHand, stack.TargetDiscard),
		sig(action.GroupDiscardCard, stack.TargetPlayerHand, stack.TargetDiscard),
	},
	"fromRevealedDiscardCard": {
		sig(action.GroupDiscardCard, stack.TargetGMRevealed, stack.TargetDiscard),
		sig(action.GroupDiscardCard, stack.TargetPlayerRevealed, stack.TargetDiscard),
	},
	"fromHandPlayCard": {
		sig(action.GroupPlayCard, stack.TargetGMHand, stack.TargetDiscard),
		sig(action.GroupPlayCard, stack.TargetPlayerHand, stack.TargetDiscard),
	},
	"fromRevealedPlayCard": {
		sig(action.GroupPlayCard, stack.TargetGMRevealed, stack.TargetDiscard),
		sig(action.GroupPlayCard, stack.TargetPlayerRevealed, stack.TargetDiscard),
	},
	"fromHandMoveCard": {
		sig(action.GroupMoveCard, stack.TargetGMHand, stack.TargetDeck),
		sig(action.GroupMoveCard, stack.TargetPlayerHand, stack.TargetDeck),
	},
	"fromRevealedMoveCard": {
		sig(action.GroupMoveCard, stack.TargetGMRevealed, stack.TargetDeck),
		sig(action.GroupMoveCard, stack.TargetPlayerRevealed, stack.TargetDeck),
	},
	"fromDiscardReturnToDeck": {
		sig(action.GroupMoveCard, stack.TargetDiscard, stack.TargetDeck),
	},
	"fromRevealedReturnToHand": {
		sig(action.GroupReturnCard, stack.TargetGMRevealed, stack.TargetGMHand),
		sig(action.GroupReturnCard, stack.TargetPlayerRevealed, stack.TargetPlayerHand),
	},
	"fromHandRevealCard": {
		sig(action.GroupRevealCard, stack.TargetGMHand, stack.TargetGMRevealed),
		sig(action.GroupRevealCard, stack.TargetPlayerHand, stack.TargetPlayerRevealed),
	},
	"fromHandExchangeCard": {
		sig(action.GroupExchangeCard, stack.TargetGMHand, stack.TargetDiscard),
		sig(action.GroupExchangeCard, stack.TargetPlayerHand, stack.TargetDiscard),
	},
	"fromRevealedExchangeCard": {
		sig(action.GroupExchangeCard, stack.TargetGMRevealed, stack.TargetDiscard),
		sig(action.GroupExchangeCard, stack.TargetPlayerRevealed, stack.TargetDiscard),
	},
	"swapHandAndRevealed": {
		sig(action.GroupSwapCard, stack.TargetGMHand, stack.TargetGMRevealed),
		sig(action.GroupSwapCard, stack.TargetPlayerHand, stack.TargetPlayerRevealed),
	},
	"fromDiscardShuffleBackIntoDeck": {
		sig(action.GroupShuffleDiscard, stack.TargetDiscard, stack.TargetDeck),
	},
	"flipCard": {
		sig(action.GroupFlipCard, stack.TargetGMHand, stack.TargetGMHand),
		sig(action.GroupFlipCard, stack.TargetPlayerHand, stack.TargetPlayerHand),
		sig(action.GroupFlipCard, stack.TargetGMRevealed, stack.TargetGMRevealed),
		sig(action.GroupFlipCard, stack.TargetPlayerRevealed, stack.TargetPlayerRevealed),
	},
	"rotateCard": {
		sig(action.GroupRotateCard, stack.TargetGMHand, stack.TargetGMHand),
		sig(action.GroupRotateCard, stack.TargetPlayerHand, stack.TargetPlayerHand),
		sig(action.GroupRotateCard, stack.TargetGMRevealed, stack.TargetGMRevealed),
		sig(action.GroupRotateCard, stack.TargetPlayerRevealed, stack.TargetPlayerRevealed),
	},
}

// LegacyFlags returns every flag name in the mapping table, sorted.
func LegacyFlags() []string {
	flags := make([]string, 0, len(legacyFlagSignatures))
	for flag := range legacyFlagSignatures {
		flags = append(flags, flag)
	}
	sort.Strings(flags)
	return flags
}

// MappedSignatures returns the V2 signatures one legacy flag expands to.
func MappedSignatures(flag string) ([]action.Signature, bool) {
	signatures, ok := legacyFlagSignatures[flag]
	if !ok {
		return nil, false
	}
	out := make([]action.Signature, len(signatures))
	copy(out, signatures)
	return out, true
}

// Migrate transforms a whole V1 collection into the V2 shape and returns the
// next format-version tag. It is a pure transform: persistence and the
// "already migrated" version guard are the caller's responsibility, and the
// engine re-transforms whatever collection it is handed.
//
// Per deck: enabled flags expand through the mapping table into signatures
// set true, parameters copy through verbatim, and a rollback block for the
// source version snapshots the raw flags and parameters. Pre-existing
// rollback history carries forward unchanged. Unmapped flags produce a
// warning and are dropped.
func Migrate(legacy LegacyCollection) (stackconfig.Collection, VersionTag, []Warning) {
	out := make(stackconfig.Collection, len(legacy))
	var warnings []Warning

	keys := make([]string, 0, len(legacy))
	for key := range legacy {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, coreKey := range keys {
		entry := legacy[coreKey]

		rollback := make(map[string]stackconfig.RollbackBlock, len(entry.Rollback)+1)
		for tag, block := range entry.Rollback {
			rollback[tag] = block
		}
		rollback[string(VersionLegacy)] = stackconfig.RollbackBlock{
			Confs:      toAnyMap(entry.Confs),
			Parameters: entry.Parameters,
		}

		config := stackconfig.Config{}
		flags := make([]string, 0, len(entry.Confs))
		for flag := range entry.Confs {
			flags = append(flags, flag)
		}
		sort.Strings(flags)
		for _, flag := range flags {
			if !entry.Confs[flag] {
				continue
			}
			signatures, ok := legacyFlagSignatures[flag]
			if !ok {
				warnings = append(warnings, Warning{CoreKey: coreKey, Flag: flag})
				continue
			}
			for _, signature := range signatures {
				config[signature] = true
			}
		}

		migrated := stackconfig.StoredStack{
			Parameters: entry.Parameters,
			Rollback:   rollback,
		}
		migrated.SetConfig(config)
		out[coreKey] = migrated
	}

	return out, VersionSignatures, warnings
}

func toAnyMap(flags map[string]bool) map[string]any {
	out := make(map[string]any, len(flags))
	for flag, value := range flags {
		out[flag] = value
	}
	return out
}
