package transfer

import (
	"context"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/i18n"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit/events"
)

func cardIDs(cards []stack.Card) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	return ids
}

// groupByCoreKey partitions cards by the deck kind they originate from,
// returning the kinds in sorted order so routing and audit output are
// deterministic.
func groupByCoreKey(cards []stack.Card) ([]string, map[string][]stack.Card) {
	groups := map[string][]stack.Card{}
	for _, card := range cards {
		groups[card.CoreStackKey] = append(groups[card.CoreStackKey], card)
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, groups
}

// Draw pulls cards from a gm- or player-owned container into the actor's
// hand. Amount defaults to one.
func (s *Service) Draw(ctx context.Context, actor Actor, from *stack.Container, amount int) ([]stack.Card, error) {
	if amount == 0 {
		amount = 1
	}
	if amount < 1 {
		return nil, apperrors.WithMetadata(apperrors.CodeTransferAmountInvalid,
			"draw amount must be at least one",
			map[string]string{"Amount": strconv.Itoa(amount)})
	}
	if err := AssertOwnerCategory(from, OwnerSet{GMs: true, Players: true}); err != nil {
		return nil, err
	}

	cards, err := s.backend.Draw(ctx, from, amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "draw cards", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferDraw,
		TableID:   from.ID,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditDrawKey).
			WithNumber(strconv.Itoa(len(cards))).
			WithStack(actor.Name).
			WithFrom(from.Name),
	})
	return cards, nil
}

// Give passes cards from the shared deck to a recipient container. A hand
// recipient keeps the cards hidden from everyone else; the hidden flag is
// derived from the recipient type, not from the caller.
func (s *Service) Give(ctx context.Context, actor Actor, source, recipient *stack.Container, ids []string) ([]stack.Card, error) {
	if len(ids) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to give")
	}
	if err := AssertOwnerCategory(source, OwnerSet{Nobody: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(source, TypeSet{Deck: true}); err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperrors.New(apperrors.CodeTransferNoDestination, "recipient is required")
	}

	cards, err := s.backend.Pass(ctx, recipient, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "give cards", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferGive,
		TableID:   source.ID,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditGiveKey).
			WithNumber(strconv.Itoa(len(cards))).
			WithStack(recipient.Name).
			WithFrom(source.Name),
	})
	return cards, nil
}

// Exchange swaps two disjoint card sets between two gm- or player-owned
// containers in both directions.
func (s *Service) Exchange(ctx context.Context, actor Actor, a, b *stack.Container, aIDs, bIDs []string) ([]stack.Card, error) {
	if len(aIDs) == 0 && len(bIDs) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to exchange")
	}
	for _, container := range []*stack.Container{a, b} {
		if err := AssertOwnerCategory(container, OwnerSet{GMs: true, Players: true}); err != nil {
			return nil, err
		}
		if err := AssertContainerType(container, TypeSet{Hand: true, Pile: true}); err != nil {
			return nil, err
		}
	}
	seen := map[string]bool{}
	for _, id := range aIDs {
		seen[id] = true
	}
	for _, id := range bIDs {
		if seen[id] {
			return nil, apperrors.WithMetadata(apperrors.CodeTransferCardsOverlap,
				"exchange sets must be disjoint",
				map[string]string{"Card": id})
		}
	}

	var moved []stack.Card
	if len(aIDs) > 0 {
		cards, err := s.backend.Pass(ctx, b, aIDs)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "exchange cards", err)
		}
		moved = append(moved, cards...)
	}
	if len(bIDs) > 0 {
		cards, err := s.backend.Pass(ctx, a, bIDs)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "exchange cards", err)
		}
		moved = append(moved, cards...)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferExchange,
		TableID:   a.ID,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditExchangeKey).
			WithNumber(strconv.Itoa(len(moved))).
			WithStack(b.Name).
			WithFrom(a.Name),
	})
	return moved, nil
}

// Discard routes cards to the discard pile matching each card's own origin
// deck kind. Routing is grouped per kind and each subgroup completes
// independently: an unreachable discard for one kind skips that subgroup with
// a warning and never blocks the others.
func (s *Service) Discard(ctx context.Context, actor Actor, source *stack.Container, cards []stack.Card) ([]stack.Card, error) {
	if len(cards) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to discard")
	}
	if err := s.assertNotADiscardPile(source); err != nil {
		return nil, err
	}

	var moved []stack.Card
	keys, groups := groupByCoreKey(cards)
	for _, coreKey := range keys {
		group := groups[coreKey]
		discard, err := s.directory.DiscardFor(coreKey)
		if err != nil {
			s.logger.Printf("discard: no pile for kind %s, skipping %d cards: %v", coreKey, len(group), err)
			continue
		}
		passed, err := s.backend.Pass(ctx, discard, cardIDs(group))
		if err != nil {
			s.logger.Printf("discard: pass to %s failed, skipping kind %s: %v", discard.Name, coreKey, err)
			continue
		}
		moved = append(moved, passed...)
		s.emit(ctx, audit.Event{
			EventName: events.TransferDiscard,
			TableID:   discard.ID,
			CoreKey:   coreKey,
			ActorKind: string(actor.Kind),
			ActorID:   actor.ID,
			Record: audit.NewRecord(i18n.AuditDiscardKey).
				WithNumber(strconv.Itoa(len(passed))).
				WithStack(discard.Name).
				WithFrom(actor.Name).
				WithCore(coreKey),
		})
	}
	return moved, nil
}

// ReturnToDeck folds a single card from a shared pile back into its owning
// deck, then best-effort shuffles that deck. Missing shuffle rights degrade
// to a warning, never a failure.
func (s *Service) ReturnToDeck(ctx context.Context, actor Actor, source *stack.Container, card stack.Card) ([]stack.Card, error) {
	if err := AssertOwnerCategory(source, OwnerSet{Nobody: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(source, TypeSet{Pile: true}); err != nil {
		return nil, err
	}
	deck, err := s.directory.DeckFor(card.CoreStackKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCoreStackUnknown, "resolve deck for card", err)
	}

	moved, err := s.backend.Pass(ctx, deck, []string{card.ID})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "return card to deck", err)
	}
	s.shuffleBestEffort(ctx, actor, deck)

	s.emit(ctx, audit.Event{
		EventName: events.TransferReturnToDeck,
		TableID:   deck.ID,
		CoreKey:   card.CoreStackKey,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditReturnToDeckKey).
			WithNumber("1").
			WithStack(deck.Name).
			WithFrom(source.Name),
	})
	return moved, nil
}

// ReturnToHand takes revealed cards back into the hand of the pile's owner.
func (s *Service) ReturnToHand(ctx context.Context, actor Actor, source *stack.Container, ids []string) ([]stack.Card, error) {
	if len(ids) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to return")
	}
	if err := AssertOwnerCategory(source, OwnerSet{GMs: true, Players: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(source, TypeSet{Pile: true}); err != nil {
		return nil, err
	}
	hand, err := s.directory.HandFor(source.Owner)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransferNoDestination, "resolve hand for owner", err)
	}

	moved, err := s.backend.Pass(ctx, hand, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "return cards to hand", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferReturnToHand,
		TableID:   hand.ID,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditReturnToHandKey).
			WithNumber(strconv.Itoa(len(moved))).
			WithStack(hand.Name).
			WithFrom(source.Name),
	})
	return moved, nil
}

// ShuffleDiscardIntoDeck resets a shared pile's entire content back into its
// deck and best-effort shuffles the deck.
func (s *Service) ShuffleDiscardIntoDeck(ctx context.Context, actor Actor, pile *stack.Container) ([]stack.Card, error) {
	if err := AssertOwnerCategory(pile, OwnerSet{Nobody: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(pile, TypeSet{Pile: true}); err != nil {
		return nil, err
	}

	moved, err := s.backend.Reset(ctx, pile)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "reset discard pile", err)
	}
	if deck, err := s.directory.DeckFor(pile.CoreStackKey); err == nil {
		s.shuffleBestEffort(ctx, actor, deck)
	} else {
		s.logger.Printf("shuffle discard: no deck for kind %s: %v", pile.CoreStackKey, err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferShuffleDiscard,
		TableID:   pile.ID,
		CoreKey:   pile.CoreStackKey,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditShuffleDiscardKey).
			WithNumber(strconv.Itoa(len(moved))).
			WithStack(pile.Name).
			WithCore(pile.CoreStackKey),
	})
	return moved, nil
}

// Play routes cards from a hand or reveal pile to the correct discard by
// origin kind, one audit record per kind with the card names spelled out.
func (s *Service) Play(ctx context.Context, actor Actor, source *stack.Container, cards []stack.Card) ([]stack.Card, error) {
	if len(cards) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to play")
	}
	// Type before owner: a shared deck fails both rules, and the type rule
	// is the one that names what went wrong.
	if err := AssertContainerType(source, TypeSet{Hand: true, Pile: true}); err != nil {
		return nil, err
	}
	if err := AssertOwnerCategory(source, OwnerSet{GMs: true, Players: true}); err != nil {
		return nil, err
	}

	var moved []stack.Card
	keys, groups := groupByCoreKey(cards)
	for _, coreKey := range keys {
		group := groups[coreKey]
		discard, err := s.directory.DiscardFor(coreKey)
		if err != nil {
			s.logger.Printf("play: no discard for kind %s, skipping %d cards: %v", coreKey, len(group), err)
			continue
		}
		passed, err := s.backend.Pass(ctx, discard, cardIDs(group))
		if err != nil {
			s.logger.Printf("play: pass to %s failed, skipping kind %s: %v", discard.Name, coreKey, err)
			continue
		}
		moved = append(moved, passed...)
		names := make([]string, len(group))
		for i, card := range group {
			names[i] = card.Name
		}
		sort.Strings(names)
		listing := strings.Join(names, ", ")
		s.emit(ctx, audit.Event{
			EventName: events.TransferPlay,
			TableID:   discard.ID,
			CoreKey:   coreKey,
			ActorKind: string(actor.Kind),
			ActorID:   actor.ID,
			Record: audit.NewRecord(i18n.AuditPlayKey).
				WithNumber(strconv.Itoa(len(passed))).
				WithStack(listing).
				WithFrom(actor.Name).
				WithCore(coreKey),
		})
	}
	return moved, nil
}

// Reveal turns hand cards face up into the owner's reveal pile.
func (s *Service) Reveal(ctx context.Context, actor Actor, source *stack.Container, ids []string) ([]stack.Card, error) {
	if len(ids) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferCardsEmpty, "no cards to reveal")
	}
	if err := AssertOwnerCategory(source, OwnerSet{GMs: true, Players: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(source, TypeSet{Hand: true}); err != nil {
		return nil, err
	}
	revealed, err := s.directory.RevealedFor(source.Owner)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransferNoDestination, "resolve reveal pile for owner", err)
	}

	moved, err := s.backend.Pass(ctx, revealed, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "reveal cards", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferReveal,
		TableID:   revealed.ID,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditRevealKey).
			WithNumber(strconv.Itoa(len(moved))).
			WithStack(revealed.Name).
			WithFrom(source.Name),
	})
	return moved, nil
}

// Deal distributes cards from the shared deck to an explicit list of
// destination containers.
func (s *Service) Deal(ctx context.Context, actor Actor, source *stack.Container, destinations []*stack.Container, amount int) ([]stack.Card, error) {
	if amount == 0 {
		amount = 1
	}
	if amount < 1 {
		return nil, apperrors.WithMetadata(apperrors.CodeTransferAmountInvalid,
			"deal amount must be at least one",
			map[string]string{"Amount": strconv.Itoa(amount)})
	}
	if len(destinations) == 0 {
		return nil, apperrors.New(apperrors.CodeTransferNoDestination, "deal needs at least one destination")
	}
	if err := AssertOwnerCategory(source, OwnerSet{Nobody: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(source, TypeSet{Deck: true}); err != nil {
		return nil, err
	}

	cards, err := s.backend.Deal(ctx, source, destinations, amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "deal cards", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferDeal,
		TableID:   source.ID,
		CoreKey:   source.CoreStackKey,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditDealKey).
			WithNumber(strconv.Itoa(amount)).
			WithStack(source.Name).
			WithCore(source.CoreStackKey),
	})
	return cards, nil
}

// ShuffleDeck randomizes the shared deck in place.
func (s *Service) ShuffleDeck(ctx context.Context, actor Actor, deck *stack.Container) error {
	if err := AssertOwnerCategory(deck, OwnerSet{Nobody: true}); err != nil {
		return err
	}
	if err := AssertContainerType(deck, TypeSet{Deck: true}); err != nil {
		return err
	}
	if err := s.backend.Shuffle(ctx, deck); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendUnavailable, "shuffle deck", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferShuffleDeck,
		TableID:   deck.ID,
		CoreKey:   deck.CoreStackKey,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditShuffleDeckKey).
			WithStack(deck.Name).
			WithCore(deck.CoreStackKey),
	})
	return nil
}

// ResetDeck rebuilds the shared deck to its initial content, clears the
// current-face cursor, and re-shuffles.
func (s *Service) ResetDeck(ctx context.Context, actor Actor, deck *stack.Container) ([]stack.Card, error) {
	if err := AssertOwnerCategory(deck, OwnerSet{Nobody: true}); err != nil {
		return nil, err
	}
	if err := AssertContainerType(deck, TypeSet{Deck: true}); err != nil {
		return nil, err
	}

	cards, err := s.backend.Reset(ctx, deck)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "reset deck", err)
	}
	if err := s.backend.ClearFaceCursor(ctx, deck); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "clear face cursor", err)
	}
	if err := s.backend.Shuffle(ctx, deck); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendUnavailable, "shuffle reset deck", err)
	}

	s.emit(ctx, audit.Event{
		EventName: events.TransferResetDeck,
		TableID:   deck.ID,
		CoreKey:   deck.CoreStackKey,
		ActorKind: string(actor.Kind),
		ActorID:   actor.ID,
		Record: audit.NewRecord(i18n.AuditResetDeckKey).
			WithStack(deck.Name).
			WithCore(deck.CoreStackKey),
	})
	return cards, nil
}

// shuffleBestEffort shuffles a deck when the actor has the rights, logging a
// permission shortfall and continuing otherwise.
func (s *Service) shuffleBestEffort(ctx context.Context, actor Actor, deck *stack.Container) {
	if !s.rights.CanShuffle(actor, deck) {
		shortfall := apperrors.WithMetadata(apperrors.CodePermissionShortfall,
			"actor may not shuffle, skipping",
			map[string]string{"Container": deck.Name, "Actor": actor.ID})
		s.logger.Printf("shuffle skipped: %v", shortfall)
		s.emit(ctx, audit.Event{
			EventName: events.PermissionShortfall,
			Severity:  audit.SeverityWarn,
			TableID:   deck.ID,
			CoreKey:   deck.CoreStackKey,
			ActorKind: string(actor.Kind),
			ActorID:   actor.ID,
			Record:    audit.NewRecord(i18n.AuditShortfallKey).WithStack(deck.Name),
		})
		return
	}
	if err := s.backend.Shuffle(ctx, deck); err != nil {
		s.logger.Printf("best-effort shuffle of %s failed: %v", deck.Name, err)
	}
}
