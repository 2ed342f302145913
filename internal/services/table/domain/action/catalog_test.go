package action

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

func TestCatalogEntriesAreStructurallySensible(t *testing.T) {
	for _, group := range Groups() {
		if group.ID == "" {
			t.Fatal("group id must not be empty")
		}
		if group.NameKey == "" {
			t.Fatalf("%s: group name key must not be empty", group.ID)
		}
		if len(group.Entries) == 0 {
			t.Fatalf("%s: group must carry entries", group.ID)
		}
		for _, entry := range group.Entries {
			if entry.From == stack.TargetUnspecified || entry.Target == stack.TargetUnspecified {
				t.Fatalf("%s: entry with unspecified category", group.ID)
			}
			inPlace := group.ID == GroupFlipCard || group.ID == GroupRotateCard
			if inPlace && entry.From != entry.Target {
				t.Fatalf("%s: in-place entry must keep its category", group.ID)
			}
			if !inPlace && entry.From == entry.Target {
				t.Fatalf("%s: transfer entry must change category", group.ID)
			}
		}
	}
}

func TestSwapConnectsHandToOwnReveal(t *testing.T) {
	entries, ok := EntriesFor(GroupSwapCard)
	if !ok {
		t.Fatal("expected swap group")
	}
	for _, entry := range entries {
		gmSide := entry.From == stack.TargetGMHand && entry.Target == stack.TargetGMRevealed
		playerSide := entry.From == stack.TargetPlayerHand && entry.Target == stack.TargetPlayerRevealed
		if !gmSide && !playerSide {
			t.Fatalf("unexpected swap entry %s -> %s", entry.From, entry.Target)
		}
	}
}

func TestCatalogSignaturesAreUnique(t *testing.T) {
	seen := map[Signature]GroupID{}
	for _, group := range Groups() {
		for _, entry := range group.Entries {
			sig := SignatureFor(group.ID, entry)
			if prior, dup := seen[sig]; dup {
				t.Fatalf("signature %s defined by %s and %s", sig, prior, group.ID)
			}
			seen[sig] = group.ID
		}
	}
}

func TestEntriesForUnknownGroup(t *testing.T) {
	if _, ok := EntriesFor("teleportCard"); ok {
		t.Fatal("expected unknown group to report false")
	}
}

func TestSignatureStringAndParse(t *testing.T) {
	sig := Signature{Group: GroupPlayCard, From: stack.TargetPlayerHand, Target: stack.TargetDiscard}
	if sig.String() != "playCard-PHDI" {
		t.Fatalf("expected playCard-PHDI, got %s", sig.String())
	}

	parsed, err := ParseSignature("playCard-PHDI")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != sig {
		t.Fatalf("expected %v, got %v", sig, parsed)
	}
}

func TestParseSignatureRejectsMalformed(t *testing.T) {
	tests := []string{"", "playCard", "playCard-", "playCard-PH", "playCard-XXDI", "playCard-PHXX", "-PHDI"}
	for _, raw := range tests {
		_, err := ParseSignature(raw)
		if err == nil {
			t.Fatalf("%q: expected error", raw)
		}
		var domainErr *apperrors.Error
		if !errors.As(err, &domainErr) {
			t.Fatalf("%q: expected domain error, got %T", raw, err)
		}
		if domainErr.Code != apperrors.CodeActionSignatureBad {
			t.Fatalf("%q: expected code %s, got %s", raw, apperrors.CodeActionSignatureBad, domainErr.Code)
		}
	}
}

func TestParseSignatureKeepsGroupNamesWithDashes(t *testing.T) {
	parsed, err := ParseSignature("my-custom-group-PHDI")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Group != "my-custom-group" {
		t.Fatalf("expected group my-custom-group, got %s", parsed.Group)
	}
}
