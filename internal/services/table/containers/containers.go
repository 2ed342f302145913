// Package containers provides the in-process card container backend: decks,
// discard piles, hands and reveal areas held in memory, with the move
// primitives the transfer layer delegates to. Each primitive is atomic under
// the table lock.
package containers

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	"github.com/louisbranch/cardtable/internal/platform/id"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

// Table owns every container of one live table.
type Table struct {
	mu         sync.Mutex
	containers map[string]*stack.Container
	contents   map[string][]stack.Card
	initial    map[string][]stack.Card
	faceCursor map[string]string

	decks    map[string]string
	discards map[string]string
	hands    map[string]string
	reveals  map[string]string

	rng *rand.Rand
}

var (
	_ transfer.ContainerBackend   = (*Table)(nil)
	_ transfer.ContainerDirectory = (*Table)(nil)
	_ transfer.Rights             = (*Table)(nil)
)

// NewTable creates an empty table.
func NewTable(seed int64) *Table {
	return &Table{
		containers: map[string]*stack.Container{},
		contents:   map[string][]stack.Card{},
		initial:    map[string][]stack.Card{},
		faceCursor: map[string]string{},
		decks:      map[string]string{},
		discards:   map[string]string{},
		hands:      map[string]string{},
		reveals:    map[string]string{},
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// AddDeck declares a deck kind's deck and discard pile and seeds the deck's
// initial cards.
func (t *Table) AddDeck(coreKey, name string, cards []stack.Card) (*stack.Container, *stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.decks[coreKey]; ok {
		return nil, nil, apperrors.WithMetadata(apperrors.CodeCoreStackDuplicate,
			"deck kind already added", map[string]string{"Key": coreKey})
	}

	deckID, err := id.NewID()
	if err != nil {
		return nil, nil, err
	}
	discardID, err := id.NewID()
	if err != nil {
		return nil, nil, err
	}
	deck := &stack.Container{
		ID:           deckID,
		Name:         name,
		Type:         stack.ContainerTypeDeck,
		Owner:        stack.ForNobody(),
		CoreStackKey: coreKey,
	}
	discard := &stack.Container{
		ID:           discardID,
		Name:         name + " Discard",
		Type:         stack.ContainerTypePile,
		Owner:        stack.ForNobody(),
		CoreStackKey: coreKey,
	}

	for i := range cards {
		cards[i].CoreStackKey = coreKey
	}
	t.containers[deck.ID] = deck
	t.containers[discard.ID] = discard
	t.contents[deck.ID] = append([]stack.Card(nil), cards...)
	t.contents[discard.ID] = nil
	t.initial[deck.ID] = append([]stack.Card(nil), cards...)
	t.decks[coreKey] = deck.ID
	t.discards[coreKey] = discard.ID
	return deck, discard, nil
}

// AddGMArea creates the shared GM hand and reveal pile.
func (t *Table) AddGMArea(name string) (*stack.Container, *stack.Container, error) {
	return t.addOwnerArea(stack.ForGMs(), name)
}

// AddPlayer creates one player's hand and reveal pile.
func (t *Table) AddPlayer(playerID, name string) (*stack.Container, *stack.Container, error) {
	return t.addOwnerArea(stack.ForPlayer(playerID), name)
}

func (t *Table) addOwnerArea(owner stack.OwnerCategory, name string) (*stack.Container, *stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	handID, err := id.NewID()
	if err != nil {
		return nil, nil, err
	}
	revealID, err := id.NewID()
	if err != nil {
		return nil, nil, err
	}
	hand := &stack.Container{
		ID:    handID,
		Name:  name + " Hand",
		Type:  stack.ContainerTypeHand,
		Owner: owner,
	}
	reveal := &stack.Container{
		ID:    revealID,
		Name:  name + " Revealed",
		Type:  stack.ContainerTypePile,
		Owner: owner,
	}
	t.containers[hand.ID] = hand
	t.containers[reveal.ID] = reveal
	t.hands[owner.String()] = hand.ID
	t.reveals[owner.String()] = reveal.ID
	return hand, reveal, nil
}

// Container resolves a container by id.
func (t *Table) Container(containerID string) (*stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	container, ok := t.containers[containerID]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
			"container not found", map[string]string{"Container": containerID})
	}
	return container, nil
}

// Cards resolves card ids anywhere on the table.
func (t *Table) Cards(cardIDs []string) ([]stack.Card, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]stack.Card, 0, len(cardIDs))
	for _, cardID := range cardIDs {
		card, _, ok := t.findCard(cardID)
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
				"card not found", map[string]string{"Card": cardID})
		}
		out = append(out, card)
	}
	return out, nil
}

// Containers lists every container on the table, sorted by name.
func (t *Table) Containers() []*stack.Container {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*stack.Container, 0, len(t.containers))
	for _, container := range t.containers {
		out = append(out, container)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ContainerContents lists a container's current cards in order.
func (t *Table) ContainerContents(containerID string) ([]stack.Card, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.containers[containerID]; !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
			"container not found", map[string]string{"Container": containerID})
	}
	return append([]stack.Card(nil), t.contents[containerID]...), nil
}

func (t *Table) findCard(cardID string) (stack.Card, string, bool) {
	for containerID, cards := range t.contents {
		for _, card := range cards {
			if card.ID == cardID {
				return card, containerID, true
			}
		}
	}
	return stack.Card{}, "", false
}

func (t *Table) removeCard(containerID, cardID string) (stack.Card, bool) {
	cards := t.contents[containerID]
	for i, card := range cards {
		if card.ID == cardID {
			t.contents[containerID] = append(cards[:i:i], cards[i+1:]...)
			return card, true
		}
	}
	return stack.Card{}, false
}

// Draw removes amount cards from the top of a container.
func (t *Table) Draw(ctx context.Context, from *stack.Container, amount int) ([]stack.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	cards := t.contents[from.ID]
	if amount > len(cards) {
		amount = len(cards)
	}
	drawn := append([]stack.Card(nil), cards[:amount]...)
	t.contents[from.ID] = cards[amount:]
	return drawn, nil
}

// Pass moves the identified cards into a container, wherever they are now.
func (t *Table) Pass(ctx context.Context, to *stack.Container, cardIDs []string) ([]stack.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	moved := make([]stack.Card, 0, len(cardIDs))
	for _, cardID := range cardIDs {
		_, containerID, ok := t.findCard(cardID)
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
				"card not found", map[string]string{"Card": cardID})
		}
		card, _ := t.removeCard(containerID, cardID)
		card = normalizeForContainer(card, to)
		t.contents[to.ID] = append(t.contents[to.ID], card)
		moved = append(moved, card)
	}
	return moved, nil
}

// normalizeForContainer derives a card's visibility from the container it
// enters: hands keep cards hidden, piles show them face up, and decks fold
// them back face down and unrotated. The sender never chooses.
func normalizeForContainer(card stack.Card, to *stack.Container) stack.Card {
	switch to.Type {
	case stack.ContainerTypeDeck:
		card.FaceUp = false
		card.Rotated = false
	case stack.ContainerTypeHand:
		card.FaceUp = false
	case stack.ContainerTypePile:
		card.FaceUp = true
	}
	return card
}

// Deal distributes amount cards from a deck to each destination in turn.
func (t *Table) Deal(ctx context.Context, from *stack.Container, destinations []*stack.Container, amount int) ([]stack.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var dealt []stack.Card
	for round := 0; round < amount; round++ {
		for _, destination := range destinations {
			cards := t.contents[from.ID]
			if len(cards) == 0 {
				return dealt, nil
			}
			card := normalizeForContainer(cards[0], destination)
			t.contents[from.ID] = cards[1:]
			t.contents[destination.ID] = append(t.contents[destination.ID], card)
			dealt = append(dealt, card)
		}
	}
	return dealt, nil
}

// Reset returns a container's content to its origin. A discard pile empties
// back into its deck; a deck gathers every card of its kind and restores the
// initial order.
func (t *Table) Reset(ctx context.Context, container *stack.Container) ([]stack.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if container.Type == stack.ContainerTypePile && container.Owner.Kind == stack.OwnerNobody {
		deckID, ok := t.decks[container.CoreStackKey]
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeCoreStackNoDiscard,
				"pile has no owning deck", map[string]string{"Container": container.Name})
		}
		moved := t.contents[container.ID]
		for i := range moved {
			moved[i].FaceUp = false
			moved[i].Rotated = false
		}
		t.contents[deckID] = append(t.contents[deckID], moved...)
		t.contents[container.ID] = nil
		return append([]stack.Card(nil), moved...), nil
	}

	if container.Type == stack.ContainerTypeDeck {
		for containerID := range t.contents {
			if containerID == container.ID {
				continue
			}
			kept := t.contents[containerID][:0]
			for _, card := range t.contents[containerID] {
				if card.CoreStackKey != container.CoreStackKey {
					kept = append(kept, card)
				}
			}
			t.contents[containerID] = kept
		}
		restored := append([]stack.Card(nil), t.initial[container.ID]...)
		t.contents[container.ID] = restored
		return restored, nil
	}

	return nil, fmt.Errorf("container %s cannot be reset", container.Name)
}

// Shuffle randomizes a container's order.
func (t *Table) Shuffle(ctx context.Context, container *stack.Container) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	cards := t.contents[container.ID]
	t.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return nil
}

// ClearFaceCursor clears a deck's current-face marker.
func (t *Table) ClearFaceCursor(ctx context.Context, deck *stack.Container) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.faceCursor, deck.ID)
	return nil
}

// SetFaceCursor marks a deck's current face card.
func (t *Table) SetFaceCursor(deckID, cardID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faceCursor[deckID] = cardID
}

// FaceCursor returns a deck's current face card id, if set.
func (t *Table) FaceCursor(deckID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cardID, ok := t.faceCursor[deckID]
	return cardID, ok
}

// DeckFor resolves the deck container of a deck kind.
func (t *Table) DeckFor(coreKey string) (*stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if deckID, ok := t.decks[coreKey]; ok {
		return t.containers[deckID], nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeCoreStackUnknown,
		"no deck for kind", map[string]string{"Key": coreKey})
}

// DiscardFor resolves the discard pile of a deck kind.
func (t *Table) DiscardFor(coreKey string) (*stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pileID, ok := t.discards[coreKey]; ok {
		return t.containers[pileID], nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeCoreStackNoDiscard,
		"no discard for kind", map[string]string{"Key": coreKey})
}

// HandFor resolves the hand of an owner category.
func (t *Table) HandFor(owner stack.OwnerCategory) (*stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if handID, ok := t.hands[owner.String()]; ok {
		return t.containers[handID], nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
		"no hand for owner", map[string]string{"Owner": owner.String()})
}

// RevealedFor resolves the reveal pile of an owner category.
func (t *Table) RevealedFor(owner stack.OwnerCategory) (*stack.Container, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pileID, ok := t.reveals[owner.String()]; ok {
		return t.containers[pileID], nil
	}
	return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
		"no reveal pile for owner", map[string]string{"Owner": owner.String()})
}

// IsDiscard reports whether the container is a registered discard pile.
func (t *Table) IsDiscard(container *stack.Container) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, pileID := range t.discards {
		if pileID == container.ID {
			return true
		}
	}
	return false
}

// CanShuffle restricts deck shuffling to GMs.
func (t *Table) CanShuffle(actor transfer.Actor, _ *stack.Container) bool {
	return actor.Kind == transfer.ActorGM
}
