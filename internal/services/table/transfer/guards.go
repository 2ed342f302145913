package transfer

import (
	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

// OwnerSet names the owner categories an operation accepts. Omitted
// categories are disallowed.
type OwnerSet struct {
	GMs     bool
	Players bool
	Nobody  bool
}

// TypeSet names the container types an operation accepts.
type TypeSet struct {
	Deck bool
	Hand bool
	Pile bool
}

// AssertOwnerCategory fails when the container's owner category is outside
// the allowed set.
func AssertOwnerCategory(container *stack.Container, allowed OwnerSet) error {
	if container == nil {
		return apperrors.New(apperrors.CodeStructuralOwnerCategory, "container is required")
	}
	ok := false
	switch container.Owner.Kind {
	case stack.OwnerGMs:
		ok = allowed.GMs
	case stack.OwnerPlayers:
		ok = allowed.Players
	case stack.OwnerNobody:
		ok = allowed.Nobody
	}
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeStructuralOwnerCategory,
			"container owner category not permitted for this operation",
			map[string]string{
				"Container": container.Name,
				"Owner":     container.Owner.String(),
			})
	}
	return nil
}

// AssertContainerType fails when the container's type is outside the allowed
// set.
func AssertContainerType(container *stack.Container, allowed TypeSet) error {
	if container == nil {
		return apperrors.New(apperrors.CodeStructuralContainerType, "container is required")
	}
	ok := false
	switch container.Type {
	case stack.ContainerTypeDeck:
		ok = allowed.Deck
	case stack.ContainerTypeHand:
		ok = allowed.Hand
	case stack.ContainerTypePile:
		ok = allowed.Pile
	}
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeStructuralContainerType,
			"container type not permitted for this operation",
			map[string]string{
				"Container": container.Name,
				"Type":      container.Type.String(),
			})
	}
	return nil
}

// assertNotADiscardPile fails when the container is a registered discard pile
// for any declared deck kind. Discarding into a discard is always rejected.
func (s *Service) assertNotADiscardPile(container *stack.Container) error {
	if container == nil {
		return apperrors.New(apperrors.CodeStructuralDiscardPile, "container is required")
	}
	if s.directory.IsDiscard(container) {
		return apperrors.WithMetadata(apperrors.CodeStructuralDiscardPile,
			"container is a discard pile",
			map[string]string{"Container": container.Name})
	}
	return nil
}
