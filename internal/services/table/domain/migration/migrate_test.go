package migration

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

func TestMigrateExpandsHandPlay(t *testing.T) {
	legacy := LegacyCollection{
		"tarot": {
			Confs:      map[string]bool{"fromHandPlayCard": true},
			Parameters: map[string]any{"x": float64(1)},
		},
	}

	migrated, next, warnings := Migrate(legacy)
	if next != VersionSignatures {
		t.Fatalf("next version = %q, want %q", next, VersionSignatures)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	stored, ok := migrated["tarot"]
	if !ok {
		t.Fatal("missing tarot entry")
	}
	for _, want := range []string{"playCard-GHDI", "playCard-PHDI"} {
		if !stored.Actions[want] {
			t.Errorf("signature %s not enabled", want)
		}
	}
	if got := len(stored.Actions); got != 2 {
		t.Errorf("enabled signatures = %d, want 2", got)
	}
	if stored.Parameters["x"] != float64(1) {
		t.Errorf("parameters not carried: %v", stored.Parameters)
	}

	block, ok := stored.Rollback[string(VersionLegacy)]
	if !ok {
		t.Fatal("missing V1 rollback block")
	}
	if block.Confs["fromHandPlayCard"] != true {
		t.Errorf("rollback confs = %v", block.Confs)
	}
	if block.Parameters["x"] != float64(1) {
		t.Errorf("rollback parameters = %v", block.Parameters)
	}
}

func TestMigrateDisabledFlagsStayAbsent(t *testing.T) {
	legacy := LegacyCollection{
		"base": {
			Confs: map[string]bool{
				"fromHandPlayCard":    false,
				"fromDeckDiscardCard": true,
			},
		},
	}

	migrated, _, _ := Migrate(legacy)
	stored := migrated["base"]
	if stored.Actions["playCard-GHDI"] || stored.Actions["playCard-PHDI"] {
		t.Error("disabled flag produced enabled signatures")
	}
	if !stored.Actions["discardCard-DEDI"] {
		t.Error("fromDeckDiscardCard not expanded")
	}
	block := stored.Rollback[string(VersionLegacy)]
	if block.Confs["fromHandPlayCard"] != false {
		t.Error("disabled flag missing from rollback snapshot")
	}
}

func TestMigrateWarnsOnUnknownFlag(t *testing.T) {
	legacy := LegacyCollection{
		"base": {
			Confs: map[string]bool{"someRetiredFlag": true},
		},
	}

	migrated, _, warnings := Migrate(legacy)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	if warnings[0].CoreKey != "base" || warnings[0].Flag != "someRetiredFlag" {
		t.Errorf("warning = %+v", warnings[0])
	}
	if len(migrated["base"].Actions) != 0 {
		t.Errorf("unmapped flag produced signatures: %v", migrated["base"].Actions)
	}
	// The raw flag still survives in the rollback snapshot.
	if migrated["base"].Rollback[string(VersionLegacy)].Confs["someRetiredFlag"] != true {
		t.Error("unmapped flag missing from rollback snapshot")
	}
}

func TestMigrateCarriesPriorRollback(t *testing.T) {
	legacy := LegacyCollection{
		"base": {
			Confs: map[string]bool{"flipCard": true},
			Rollback: map[string]stackconfig.RollbackBlock{
				"V0": {Confs: map[string]any{"ancient": true}},
			},
		},
	}

	migrated, _, _ := Migrate(legacy)
	stored := migrated["base"]
	if len(stored.Rollback) != 2 {
		t.Fatalf("rollback history = %d blocks, want 2", len(stored.Rollback))
	}
	if stored.Rollback["V0"].Confs["ancient"] != true {
		t.Error("prior rollback block lost")
	}
}

func TestMappingTableStaysStructural(t *testing.T) {
	for _, flag := range LegacyFlags() {
		signatures, ok := MappedSignatures(flag)
		if !ok {
			t.Fatalf("LegacyFlags listed %s but MappedSignatures misses it", flag)
		}
		if len(signatures) == 0 {
			t.Errorf("%s maps to nothing", flag)
		}
		for _, signature := range signatures {
			entries, ok := action.EntriesFor(signature.Group)
			if !ok {
				t.Errorf("%s maps to unknown group %s", flag, signature.Group)
				continue
			}
			found := false
			for _, entry := range entries {
				if entry.From == signature.From && entry.Target == signature.Target {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s maps to %s which the catalog does not list", flag, signature)
			}
		}
	}
}

func TestLegacyStackUnmarshalFlatShape(t *testing.T) {
	raw := []byte(`{
		"fromHandPlayCard": true,
		"fromDeckDiscardCard": false,
		"bogus": "yes",
		"parameters": {"x": 1},
		"rollback": {"V0": {"confs": {"old": true}}}
	}`)

	var stack LegacyStack
	if err := json.Unmarshal(raw, &stack); err != nil {
		t.Fatal(err)
	}
	if !stack.Confs["fromHandPlayCard"] {
		t.Error("true flag lost")
	}
	if enabled, ok := stack.Confs["fromDeckDiscardCard"]; !ok || enabled {
		t.Error("false flag lost or flipped")
	}
	if _, ok := stack.Confs["bogus"]; ok {
		t.Error("non-boolean value kept")
	}
	if stack.Parameters["x"] != float64(1) {
		t.Errorf("parameters = %v", stack.Parameters)
	}
	if stack.Rollback["V0"].Confs["old"] != true {
		t.Errorf("rollback = %v", stack.Rollback)
	}
}

func TestMigrateInPlaceGroups(t *testing.T) {
	legacy := LegacyCollection{
		"base": {Confs: map[string]bool{"rotateCard": true}},
	}
	migrated, _, _ := Migrate(legacy)
	for _, category := range []stack.TargetCategory{
		stack.TargetGMHand, stack.TargetPlayerHand,
		stack.TargetGMRevealed, stack.TargetPlayerRevealed,
	} {
		key := action.Signature{Group: action.GroupRotateCard, From: category, Target: category}.String()
		if !migrated["base"].Actions[key] {
			t.Errorf("rotateCard did not enable %s", key)
		}
	}
}
