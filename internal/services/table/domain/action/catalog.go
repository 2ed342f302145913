package action

import "github.com/louisbranch/cardtable/internal/services/table/domain/stack"

// Action group identifiers. These appear inside persisted signatures and
// must never be renamed.
const (
	GroupDealCard       GroupID = "dealCard"
	GroupDrawCard       GroupID = "drawCard"
	GroupPlayCard       GroupID = "playCard"
	GroupDiscardCard    GroupID = "discardCard"
	GroupMoveCard       GroupID = "moveCard"
	GroupReturnCard     GroupID = "returnCard"
	GroupRevealCard     GroupID = "revealCard"
	GroupExchangeCard   GroupID = "exchangeCard"
	GroupSwapCard       GroupID = "swapCard"
	GroupShuffleDiscard GroupID = "shuffleDiscard"
	GroupFlipCard       GroupID = "flipCard"
	GroupRotateCard     GroupID = "rotateCard"
)

// Entry is one configurable (from, target) transition inside a group.
// NameKey may be empty, in which case consumers fall back to the group name.
type Entry struct {
	From    stack.TargetCategory
	Target  stack.TargetCategory
	NameKey string
}

// Group is one semantic action family and its available transitions.
// The catalog is immutable at runtime and deliberately over-inclusive:
// entries exist for every structurally sensible transition, whether or not
// any deck enables them.
type Group struct {
	ID      GroupID
	NameKey string
	Entries []Entry
}

// groups is the whole catalog in display order. In-place actions (flip,
// rotate) use identical from and target categories.
var groups = []Group{
	{
		ID:      GroupDealCard,
		NameKey: "table.action.dealCard",
		Entries: []Entry{
			{From: stack.TargetDeck, Target: stack.TargetGMHand, NameKey: "table.action.dealCard.toGMHand"},
			{From: stack.TargetDeck, Target: stack.TargetPlayerHand, NameKey: "table.action.dealCard.toPlayerHand"},
			{From: stack.TargetDeck, Target: stack.TargetGMRevealed, NameKey: "table.action.dealCard.toGMRevealed"},
			{From: stack.TargetDeck, Target: stack.TargetPlayerRevealed, NameKey: "table.action.dealCard.toPlayerRevealed"},
		},
	},
	{
		ID:      GroupDrawCard,
		NameKey: "table.action.drawCard",
		Entries: []Entry{
			{From: stack.TargetDeck, Target: stack.TargetGMHand, NameKey: "table.action.drawCard.fromDeck"},
			{From: stack.TargetDeck, Target: stack.TargetPlayerHand, NameKey: "table.action.drawCard.fromDeck"},
			{From: stack.TargetDiscard, Target: stack.TargetGMHand, NameKey: "table.action.drawCard.fromDiscard"},
			{From: stack.TargetDiscard, Target: stack.TargetPlayerHand, NameKey: "table.action.drawCard.fromDiscard"},
		},
	},
	{
		ID:      GroupPlayCard,
		NameKey: "table.action.playCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerHand, Target: stack.TargetDiscard},
			{From: stack.TargetGMRevealed, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetDiscard},
		},
	},
	{
		ID:      GroupDiscardCard,
		NameKey: "table.action.discardCard",
		Entries: []Entry{
			{From: stack.TargetDeck, Target: stack.TargetDiscard},
			{From: stack.TargetGMHand, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerHand, Target: stack.TargetDiscard},
			{From: stack.TargetGMRevealed, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetDiscard},
		},
	},
	{
		ID:      GroupMoveCard,
		NameKey: "table.action.moveCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetDeck},
			{From: stack.TargetPlayerHand, Target: stack.TargetDeck},
			{From: stack.TargetGMRevealed, Target: stack.TargetDeck},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetDeck},
			{From: stack.TargetDiscard, Target: stack.TargetDeck},
		},
	},
	{
		ID:      GroupReturnCard,
		NameKey: "table.action.returnCard",
		Entries: []Entry{
			{From: stack.TargetGMRevealed, Target: stack.TargetGMHand},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetPlayerHand},
		},
	},
	{
		ID:      GroupRevealCard,
		NameKey: "table.action.revealCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetGMRevealed},
			{From: stack.TargetPlayerHand, Target: stack.TargetPlayerRevealed},
		},
	},
	{
		ID:      GroupExchangeCard,
		NameKey: "table.action.exchangeCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerHand, Target: stack.TargetDiscard},
			{From: stack.TargetGMRevealed, Target: stack.TargetDiscard},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetDiscard},
		},
	},
	{
		ID:      GroupSwapCard,
		NameKey: "table.action.swapCard",
		Entries: []Entry{
			// Swap only connects a hand with its own owner's reveal area.
			{From: stack.TargetGMHand, Target: stack.TargetGMRevealed},
			{From: stack.TargetPlayerHand, Target: stack.TargetPlayerRevealed},
		},
	},
	{
		ID:      GroupShuffleDiscard,
		NameKey: "table.action.shuffleDiscard",
		Entries: []Entry{
			{From: stack.TargetDiscard, Target: stack.TargetDeck},
		},
	},
	{
		ID:      GroupFlipCard,
		NameKey: "table.action.flipCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetGMHand},
			{From: stack.TargetPlayerHand, Target: stack.TargetPlayerHand},
			{From: stack.TargetGMRevealed, Target: stack.TargetGMRevealed},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetPlayerRevealed},
		},
	},
	{
		ID:      GroupRotateCard,
		NameKey: "table.action.rotateCard",
		Entries: []Entry{
			{From: stack.TargetGMHand, Target: stack.TargetGMHand},
			{From: stack.TargetPlayerHand, Target: stack.TargetPlayerHand},
			{From: stack.TargetGMRevealed, Target: stack.TargetGMRevealed},
			{From: stack.TargetPlayerRevealed, Target: stack.TargetPlayerRevealed},
		},
	},
}

// Groups returns the whole catalog in display order. The returned slice is a
// copy; entries are shared but immutable by convention.
func Groups() []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

// EntriesFor returns the catalog entries of one group. The second return is
// false for unknown group ids; callers log and skip, never fail.
func EntriesFor(groupID GroupID) ([]Entry, bool) {
	for _, group := range groups {
		if group.ID == groupID {
			entries := make([]Entry, len(group.Entries))
			copy(entries, group.Entries)
			return entries, true
		}
	}
	return nil, false
}

// GroupByID returns one group definition by id.
func GroupByID(groupID GroupID) (Group, bool) {
	for _, group := range groups {
		if group.ID == groupID {
			return group, true
		}
	}
	return Group{}, false
}

// SignatureFor builds the signature of one group entry.
func SignatureFor(groupID GroupID, entry Entry) Signature {
	return Signature{Group: groupID, From: entry.From, Target: entry.Target}
}
