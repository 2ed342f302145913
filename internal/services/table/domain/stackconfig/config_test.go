package stackconfig

import (
	"encoding/json"
	"testing"

	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

var (
	sigPlayFromPlayerHand = action.Signature{Group: action.GroupPlayCard, From: stack.TargetPlayerHand, Target: stack.TargetDiscard}
	sigDealToGMRevealed   = action.Signature{Group: action.GroupDealCard, From: stack.TargetDeck, Target: stack.TargetGMRevealed}
	sigShuffleDiscard     = action.Signature{Group: action.GroupShuffleDiscard, From: stack.TargetDiscard, Target: stack.TargetDeck}
)

func TestDefaultFill(t *testing.T) {
	config := Config{sigPlayFromPlayerHand: false}

	if DefaultFill(config, sigPlayFromPlayerHand) {
		t.Fatal("expected stored false to win")
	}
	if !DefaultFill(config, sigDealToGMRevealed) {
		t.Fatal("expected missing signature to default to enabled")
	}
	if !DefaultFill(nil, sigDealToGMRevealed) {
		t.Fatal("expected nil config to default to enabled")
	}
}

func TestApplyGlobalOverridesForcesDependentSignaturesOff(t *testing.T) {
	config := Config{sigDealToGMRevealed: true}

	overridden := ApplyGlobalOverrides(config, GlobalFlags{HandStacksEnabled: true, RevealStacksEnabled: false})
	if overridden[sigDealToGMRevealed] {
		t.Fatal("expected reveal-dependent signature forced off")
	}
	// Signatures without reveal involvement keep their default.
	if !Enabled(overridden, sigShuffleDiscard, GlobalFlags{HandStacksEnabled: true, RevealStacksEnabled: false}) {
		t.Fatal("expected discard shuffle unaffected by reveal toggle")
	}
	// Source config untouched.
	if !config[sigDealToGMRevealed] {
		t.Fatal("expected input config unmutated")
	}
}

func TestEnabledAppliesOverridesOverStoredValue(t *testing.T) {
	config := Config{sigPlayFromPlayerHand: true}
	flags := GlobalFlags{HandStacksEnabled: false, RevealStacksEnabled: true}

	if Enabled(config, sigPlayFromPlayerHand, flags) {
		t.Fatal("expected hand toggle to win over stored true")
	}
}

func TestStoredStackJSONRoundTrip(t *testing.T) {
	stored := StoredStack{
		Actions:    map[string]bool{"playCard-PHDI": true, "playCard-GHDI": false},
		Parameters: map[string]any{"labelBase": "decks/tarot"},
		Rollback: map[string]RollbackBlock{
			"V1": {
				Confs:      map[string]any{"fromHandPlayCard": true},
				Parameters: map[string]any{"x": float64(1)},
			},
		},
	}

	data, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The persisted shape is flat: signatures sit beside the reserved keys.
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal flat: %v", err)
	}
	if _, ok := flat["playCard-PHDI"]; !ok {
		t.Fatal("expected signature as top-level key")
	}
	if _, ok := flat["parameters"]; !ok {
		t.Fatal("expected parameters key")
	}

	var decoded StoredStack
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Actions["playCard-PHDI"] || decoded.Actions["playCard-GHDI"] {
		t.Fatalf("unexpected actions %v", decoded.Actions)
	}
	if decoded.Parameters["labelBase"] != "decks/tarot" {
		t.Fatalf("unexpected parameters %v", decoded.Parameters)
	}
	if decoded.Rollback["V1"].Confs["fromHandPlayCard"] != true {
		t.Fatalf("unexpected rollback %v", decoded.Rollback)
	}
}

func TestStoredStackUnmarshalDropsMalformedValues(t *testing.T) {
	raw := `{"playCard-PHDI": true, "playCard-GHDI": "yes", "parameters": 7}`

	var decoded StoredStack
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Actions) != 1 {
		t.Fatalf("expected single valid action, got %v", decoded.Actions)
	}
	if decoded.Parameters != nil {
		t.Fatalf("expected malformed parameters dropped, got %v", decoded.Parameters)
	}
}

func TestStoredStackUnmarshalNormalizesMalformedStack(t *testing.T) {
	var decoded StoredStack
	if err := json.Unmarshal([]byte(`"not an object"`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Actions) != 0 {
		t.Fatalf("expected empty stack, got %v", decoded.Actions)
	}
}

func TestStoredStackConfigSkipsUnknownSignatures(t *testing.T) {
	stored := StoredStack{Actions: map[string]bool{
		"playCard-PHDI": true,
		"garbage":       true,
	}}

	config, skipped := stored.Config()
	if len(config) != 1 {
		t.Fatalf("expected one parsed signature, got %d", len(config))
	}
	if len(skipped) != 1 || skipped[0] != "garbage" {
		t.Fatalf("expected garbage skipped, got %v", skipped)
	}
}

func TestCollectionGetMissingKey(t *testing.T) {
	var collection Collection
	stored := collection.Get("absent")
	if len(stored.Actions) != 0 {
		t.Fatal("expected empty stack for missing key")
	}
}
