package stack

import (
	"context"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
)

// CustomAction describes one extra per-card action contributed by a
// CardBehavior beyond the shared catalog.
type CustomAction struct {
	ID      string
	NameKey string
}

// CardBehavior is the per-deck-kind extension point for card handling.
// Implementations are registered alongside a CoreStackDefinition; decks
// without one fall back to the built-in no-op behavior.
type CardBehavior interface {
	// ShouldRotate reports whether the card renders rotated in reveal areas.
	ShouldRotate(card Card) bool
	// ExtraActions lists additional actions this card offers.
	ExtraActions(card Card) []CustomAction
	// OnCustomAction executes one of the actions returned by ExtraActions.
	OnCustomAction(ctx context.Context, card Card, actionID string) error
}

// NoopBehavior is the default CardBehavior. It rotates nothing and offers
// no extra actions.
type NoopBehavior struct{}

// ShouldRotate always reports false.
func (NoopBehavior) ShouldRotate(Card) bool { return false }

// ExtraActions always returns nil.
func (NoopBehavior) ExtraActions(Card) []CustomAction { return nil }

// OnCustomAction rejects every action id.
func (NoopBehavior) OnCustomAction(_ context.Context, card Card, actionID string) error {
	return apperrors.WithMetadata(
		apperrors.CodeBehaviorNotSupported,
		"card behavior does not support custom actions",
		map[string]string{"Card": card.ID, "Action": actionID},
	)
}
