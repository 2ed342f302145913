// Package i18n declares the table service's message keys and registers their
// built-in translations.
package i18n

// Audit feed message keys. Templates substitute {NB}, {STACK}, {FROM} and
// {CORE} placeholders; lookup happens at the presentation boundary.
const (
	AuditDrawKey           = "table.audit.draw"
	AuditGiveKey           = "table.audit.give"
	AuditExchangeKey       = "table.audit.exchange"
	AuditDiscardKey        = "table.audit.discard"
	AuditReturnToDeckKey   = "table.audit.returnToDeck"
	AuditReturnToHandKey   = "table.audit.returnToHand"
	AuditShuffleDiscardKey = "table.audit.shuffleDiscard"
	AuditPlayKey           = "table.audit.play"
	AuditRevealKey         = "table.audit.reveal"
	AuditDealKey           = "table.audit.deal"
	AuditShuffleDeckKey    = "table.audit.shuffleDeck"
	AuditResetDeckKey      = "table.audit.resetDeck"
	AuditShortfallKey      = "table.audit.shortfall"
)

// Default display names for table roles.
const (
	GMNameKey     = "core.gm"
	PlayerNameKey = "core.player"
	TableNameKey  = "core.table"
)
