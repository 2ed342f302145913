package action

import (
	"strings"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

// GroupID identifies one semantic action family in the catalog.
type GroupID string

// Signature is the unique identity of one configurable (group, from, target)
// transition. Two signatures are equal iff all three fields are equal; the
// canonical string form exists only at the serialization boundary.
type Signature struct {
	Group  GroupID
	From   stack.TargetCategory
	Target stack.TargetCategory
}

// String renders the canonical persisted form, e.g. "playCard-PHDI".
func (s Signature) String() string {
	return string(s.Group) + "-" + s.From.Code() + s.Target.Code()
}

// ParseSignature parses the canonical persisted form back into a Signature.
func ParseSignature(raw string) (Signature, error) {
	malformed := func() error {
		return apperrors.WithMetadata(
			apperrors.CodeActionSignatureBad,
			"action signature is malformed",
			map[string]string{"Signature": raw},
		)
	}

	idx := strings.LastIndex(raw, "-")
	if idx <= 0 || len(raw)-idx-1 != 4 {
		return Signature{}, malformed()
	}
	from, err := stack.ParseCategoryCode(raw[idx+1 : idx+3])
	if err != nil {
		return Signature{}, malformed()
	}
	target, err := stack.ParseCategoryCode(raw[idx+3:])
	if err != nil {
		return Signature{}, malformed()
	}
	return Signature{Group: GroupID(raw[:idx]), From: from, Target: target}, nil
}
