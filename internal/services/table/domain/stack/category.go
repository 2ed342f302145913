package stack

import (
	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
)

// TargetCategory identifies one of the six fixed locations a card can occupy.
type TargetCategory int

const (
	// TargetUnspecified represents an invalid target category value.
	TargetUnspecified TargetCategory = iota
	// TargetDeck is the shared draw deck of a core stack.
	TargetDeck
	// TargetDiscard is the discard pile of a core stack.
	TargetDiscard
	// TargetGMHand is the hand shared by the GMs.
	TargetGMHand
	// TargetGMRevealed is the face-up reveal area shared by the GMs.
	TargetGMRevealed
	// TargetPlayerHand is a single player's hand.
	TargetPlayerHand
	// TargetPlayerRevealed is a single player's face-up reveal area.
	TargetPlayerRevealed
)

// categoryCodes is the stable two-letter wire code per category. The codes
// appear inside persisted action signatures and must never change.
var categoryCodes = map[TargetCategory]string{
	TargetDeck:           "DE",
	TargetDiscard:        "DI",
	TargetGMHand:         "GH",
	TargetGMRevealed:     "GR",
	TargetPlayerHand:     "PH",
	TargetPlayerRevealed: "PR",
}

var categoriesByCode = map[string]TargetCategory{
	"DE": TargetDeck,
	"DI": TargetDiscard,
	"GH": TargetGMHand,
	"GR": TargetGMRevealed,
	"PH": TargetPlayerHand,
	"PR": TargetPlayerRevealed,
}

// Code returns the two-letter wire code for the category, or "" when invalid.
func (c TargetCategory) Code() string {
	return categoryCodes[c]
}

// String returns a human-readable category name for logs.
func (c TargetCategory) String() string {
	switch c {
	case TargetDeck:
		return "deck"
	case TargetDiscard:
		return "discard"
	case TargetGMHand:
		return "gmHand"
	case TargetGMRevealed:
		return "gmRevealed"
	case TargetPlayerHand:
		return "playerHand"
	case TargetPlayerRevealed:
		return "playerRevealed"
	default:
		return "unspecified"
	}
}

// NameKey returns the localization key for the category display name.
func (c TargetCategory) NameKey() string {
	switch c {
	case TargetDeck:
		return "core.location.deck"
	case TargetDiscard:
		return "core.location.discard"
	case TargetGMHand:
		return "core.location.gmHand"
	case TargetGMRevealed:
		return "core.location.gmRevealed"
	case TargetPlayerHand:
		return "core.location.playerHand"
	case TargetPlayerRevealed:
		return "core.location.playerRevealed"
	default:
		return ""
	}
}

// IsHand reports whether the category is one of the two hand locations.
func (c TargetCategory) IsHand() bool {
	return c == TargetGMHand || c == TargetPlayerHand
}

// IsRevealed reports whether the category is one of the two reveal locations.
func (c TargetCategory) IsRevealed() bool {
	return c == TargetGMRevealed || c == TargetPlayerRevealed
}

// ParseCategoryCode resolves a two-letter wire code into a category.
func ParseCategoryCode(code string) (TargetCategory, error) {
	category, ok := categoriesByCode[code]
	if !ok {
		return TargetUnspecified, apperrors.WithMetadata(
			apperrors.CodeTargetCategoryBad,
			"target category code is not recognized",
			map[string]string{"Code": code},
		)
	}
	return category, nil
}

// Categories returns all valid categories in declaration order.
func Categories() []TargetCategory {
	return []TargetCategory{
		TargetDeck,
		TargetDiscard,
		TargetGMHand,
		TargetGMRevealed,
		TargetPlayerHand,
		TargetPlayerRevealed,
	}
}
