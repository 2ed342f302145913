package stack

// ContainerType describes the physical kind of a card container.
type ContainerType int

const (
	// ContainerTypeUnspecified represents an invalid container type value.
	ContainerTypeUnspecified ContainerType = iota
	// ContainerTypeDeck is a face-down draw deck.
	ContainerTypeDeck
	// ContainerTypeHand is a private hand.
	ContainerTypeHand
	// ContainerTypePile is a face-up pile (discard or reveal area).
	ContainerTypePile
)

// String returns the wire name of the container type.
func (t ContainerType) String() string {
	switch t {
	case ContainerTypeDeck:
		return "deck"
	case ContainerTypeHand:
		return "hand"
	case ContainerTypePile:
		return "pile"
	default:
		return "unspecified"
	}
}

// OwnerKind describes who a container belongs to.
type OwnerKind int

const (
	// OwnerUnspecified represents an invalid owner kind value.
	OwnerUnspecified OwnerKind = iota
	// OwnerNobody marks shared table containers (decks and discards).
	OwnerNobody
	// OwnerGMs marks containers shared by all GMs.
	OwnerGMs
	// OwnerPlayers marks containers owned by a single player.
	OwnerPlayers
)

// OwnerCategory identifies the owner of a container. PlayerID is set only
// when Kind is OwnerPlayers.
type OwnerCategory struct {
	Kind     OwnerKind
	PlayerID string
}

// ForNobody returns the shared-table owner category.
func ForNobody() OwnerCategory { return OwnerCategory{Kind: OwnerNobody} }

// ForGMs returns the GM-shared owner category.
func ForGMs() OwnerCategory { return OwnerCategory{Kind: OwnerGMs} }

// ForPlayer returns the owner category for one player.
func ForPlayer(playerID string) OwnerCategory {
	return OwnerCategory{Kind: OwnerPlayers, PlayerID: playerID}
}

// String returns a log-friendly owner description.
func (o OwnerCategory) String() string {
	switch o.Kind {
	case OwnerNobody:
		return "nobody"
	case OwnerGMs:
		return "gms"
	case OwnerPlayers:
		return "player:" + o.PlayerID
	default:
		return "unspecified"
	}
}

// Container is the read-only view of an external card container. The
// container lifecycle belongs to the card backend; this module only
// validates and routes against it.
type Container struct {
	ID           string
	Name         string
	Type         ContainerType
	Owner        OwnerCategory
	CoreStackKey string
}

// Category maps a container onto its target category. Decks and nobody-owned
// piles resolve to the shared locations; hands and piles resolve per owner.
func (c *Container) Category() TargetCategory {
	if c == nil {
		return TargetUnspecified
	}
	switch c.Type {
	case ContainerTypeDeck:
		return TargetDeck
	case ContainerTypeHand:
		switch c.Owner.Kind {
		case OwnerGMs:
			return TargetGMHand
		case OwnerPlayers:
			return TargetPlayerHand
		}
	case ContainerTypePile:
		switch c.Owner.Kind {
		case OwnerNobody:
			return TargetDiscard
		case OwnerGMs:
			return TargetGMRevealed
		case OwnerPlayers:
			return TargetPlayerRevealed
		}
	}
	return TargetUnspecified
}

// Card is the read-only view of a card handled by the external backend.
// CoreStackKey records the deck kind the card originates from, which drives
// per-kind discard routing.
type Card struct {
	ID           string
	Name         string
	Description  string
	CoreStackKey string
	FaceUp       bool
	Rotated      bool
}
