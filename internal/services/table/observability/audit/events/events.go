// Package events defines canonical table audit event names.
//
// The names stay stable because operational consumers rely on them.
package events

const (
	// TransferDraw captures cards pulled into a hand.
	TransferDraw = "table.transfer.draw"
	// TransferGive captures cards passed between hands.
	TransferGive = "table.transfer.give"
	// TransferExchange captures a simultaneous two-way pass.
	TransferExchange = "table.transfer.exchange"
	// TransferDiscard captures cards sent to the discard pile.
	TransferDiscard = "table.transfer.discard"
	// TransferReturnToDeck captures cards folded back into the deck.
	TransferReturnToDeck = "table.transfer.return_to_deck"
	// TransferReturnToHand captures revealed cards taken back.
	TransferReturnToHand = "table.transfer.return_to_hand"
	// TransferShuffleDiscard captures a discard pile shuffled into the deck.
	TransferShuffleDiscard = "table.transfer.shuffle_discard"
	// TransferPlay captures a card played onto the table.
	TransferPlay = "table.transfer.play"
	// TransferReveal captures a card turned face up for the table.
	TransferReveal = "table.transfer.reveal"
	// TransferDeal captures cards dealt out of the deck.
	TransferDeal = "table.transfer.deal"
	// TransferShuffleDeck captures an in-place deck shuffle.
	TransferShuffleDeck = "table.transfer.shuffle_deck"
	// TransferResetDeck captures a deck rebuilt to its initial order.
	TransferResetDeck = "table.transfer.reset_deck"
	// ConfigMigrated captures a configuration format upgrade.
	ConfigMigrated = "table.config.migrated"
	// PermissionShortfall captures a degraded transfer step.
	PermissionShortfall = "table.permission.shortfall"
)
