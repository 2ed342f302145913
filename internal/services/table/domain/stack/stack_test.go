package stack

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
)

func TestCategoryCodesRoundTrip(t *testing.T) {
	for _, category := range Categories() {
		code := category.Code()
		if len(code) != 2 {
			t.Fatalf("%s: expected two-letter code, got %q", category, code)
		}
		parsed, err := ParseCategoryCode(code)
		if err != nil {
			t.Fatalf("%s: parse code: %v", category, err)
		}
		if parsed != category {
			t.Fatalf("expected %s, got %s", category, parsed)
		}
	}
}

func TestParseCategoryCodeRejectsUnknown(t *testing.T) {
	_, err := ParseCategoryCode("XX")
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeTargetCategoryBad {
		t.Fatalf("expected code %s, got %s", apperrors.CodeTargetCategoryBad, domainErr.Code)
	}
	if domainErr.Metadata["Code"] != "XX" {
		t.Fatalf("expected code metadata, got %v", domainErr.Metadata)
	}
}

func TestContainerCategory(t *testing.T) {
	tests := []struct {
		name      string
		container Container
		want      TargetCategory
	}{
		{name: "deck", container: Container{Type: ContainerTypeDeck, Owner: ForNobody()}, want: TargetDeck},
		{name: "discard", container: Container{Type: ContainerTypePile, Owner: ForNobody()}, want: TargetDiscard},
		{name: "gm hand", container: Container{Type: ContainerTypeHand, Owner: ForGMs()}, want: TargetGMHand},
		{name: "gm revealed", container: Container{Type: ContainerTypePile, Owner: ForGMs()}, want: TargetGMRevealed},
		{name: "player hand", container: Container{Type: ContainerTypeHand, Owner: ForPlayer("p1")}, want: TargetPlayerHand},
		{name: "player revealed", container: Container{Type: ContainerTypePile, Owner: ForPlayer("p1")}, want: TargetPlayerRevealed},
		{name: "hand without owner", container: Container{Type: ContainerTypeHand, Owner: ForNobody()}, want: TargetUnspecified},
		{name: "zero value", container: Container{}, want: TargetUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.container.Category(); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNilContainerCategory(t *testing.T) {
	var c *Container
	if got := c.Category(); got != TargetUnspecified {
		t.Fatalf("expected unspecified, got %s", got)
	}
}

func TestNoopBehavior(t *testing.T) {
	var behavior NoopBehavior
	card := Card{ID: "c1"}

	if behavior.ShouldRotate(card) {
		t.Fatal("expected no rotation")
	}
	if actions := behavior.ExtraActions(card); len(actions) != 0 {
		t.Fatalf("expected no extra actions, got %d", len(actions))
	}

	err := behavior.OnCustomAction(context.Background(), card, "peek")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != apperrors.CodeBehaviorNotSupported {
		t.Fatalf("expected code %s, got %s", apperrors.CodeBehaviorNotSupported, domainErr.Code)
	}
}
