package containers

import (
	"context"
	"fmt"
	"testing"

	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

func seedCards(n int) []stack.Card {
	cards := make([]stack.Card, n)
	for i := range cards {
		cards[i] = stack.Card{ID: fmt.Sprintf("card-%d", i), Name: fmt.Sprintf("Card %d", i)}
	}
	return cards
}

func newTestTable(t *testing.T) (*Table, *stack.Container, *stack.Container, *stack.Container) {
	t.Helper()
	table := NewTable(1)
	deck, discard, err := table.AddDeck("tarot", "Tarot", seedCards(10))
	if err != nil {
		t.Fatal(err)
	}
	hand, _, err := table.AddPlayer("p1", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	return table, deck, discard, hand
}

func TestDrawTakesFromTop(t *testing.T) {
	table, deck, _, _ := newTestTable(t)

	drawn, err := table.Draw(context.Background(), deck, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(drawn) != 3 {
		t.Fatalf("drawn = %d", len(drawn))
	}
	if drawn[0].ID != "card-0" {
		t.Errorf("first card = %s, want top of deck", drawn[0].ID)
	}
	remaining, err := table.ContainerContents(deck.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 7 {
		t.Errorf("remaining = %d", len(remaining))
	}
}

func TestDrawClampsToDeckSize(t *testing.T) {
	table, deck, _, _ := newTestTable(t)

	drawn, err := table.Draw(context.Background(), deck, 99)
	if err != nil {
		t.Fatal(err)
	}
	if len(drawn) != 10 {
		t.Fatalf("drawn = %d, want whole deck", len(drawn))
	}
}

func TestPassMovesAcrossContainers(t *testing.T) {
	table, _, discard, hand := newTestTable(t)

	moved, err := table.Pass(context.Background(), hand, []string{"card-4", "card-7"})
	if err != nil {
		t.Fatal(err)
	}
	if len(moved) != 2 {
		t.Fatalf("moved = %d", len(moved))
	}
	inHand, _ := table.ContainerContents(hand.ID)
	if len(inHand) != 2 {
		t.Errorf("hand = %d cards", len(inHand))
	}

	// Onward to the discard pile, regardless of current location.
	if _, err := table.Pass(context.Background(), discard, []string{"card-4"}); err != nil {
		t.Fatal(err)
	}
	inPile, _ := table.ContainerContents(discard.ID)
	if len(inPile) != 1 || inPile[0].ID != "card-4" {
		t.Errorf("discard = %v", inPile)
	}
}

func TestPassToDeckResetsCardState(t *testing.T) {
	table, deck, _, hand := newTestTable(t)

	if _, err := table.Pass(context.Background(), hand, []string{"card-0"}); err != nil {
		t.Fatal(err)
	}
	moved, err := table.Pass(context.Background(), deck, []string{"card-0"})
	if err != nil {
		t.Fatal(err)
	}
	if moved[0].FaceUp || moved[0].Rotated {
		t.Errorf("card state not reset: %+v", moved[0])
	}
}

func TestPassDerivesVisibilityFromRecipient(t *testing.T) {
	table, _, discard, hand := newTestTable(t)
	ctx := context.Background()

	shown, err := table.Pass(ctx, discard, []string{"card-0"})
	if err != nil {
		t.Fatal(err)
	}
	if !shown[0].FaceUp {
		t.Error("card passed to a pile should turn face up")
	}

	hidden, err := table.Pass(ctx, hand, []string{"card-0"})
	if err != nil {
		t.Fatal(err)
	}
	if hidden[0].FaceUp {
		t.Error("card passed to a hand should stay hidden")
	}
}

func TestResetDiscardRefillsDeck(t *testing.T) {
	table, deck, discard, _ := newTestTable(t)
	ctx := context.Background()

	if _, err := table.Pass(ctx, discard, []string{"card-1", "card-2"}); err != nil {
		t.Fatal(err)
	}
	moved, err := table.Reset(ctx, discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(moved) != 2 {
		t.Fatalf("reset moved = %d", len(moved))
	}
	inDeck, _ := table.ContainerContents(deck.ID)
	if len(inDeck) != 10 {
		t.Errorf("deck = %d cards after reset", len(inDeck))
	}
	inPile, _ := table.ContainerContents(discard.ID)
	if len(inPile) != 0 {
		t.Errorf("discard not emptied: %v", inPile)
	}
}

func TestResetDeckRestoresInitialOrder(t *testing.T) {
	table, deck, discard, hand := newTestTable(t)
	ctx := context.Background()

	if _, err := table.Pass(ctx, hand, []string{"card-0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Pass(ctx, discard, []string{"card-5"}); err != nil {
		t.Fatal(err)
	}
	if err := table.Shuffle(ctx, deck); err != nil {
		t.Fatal(err)
	}

	restored, err := table.Reset(ctx, deck)
	if err != nil {
		t.Fatal(err)
	}
	if len(restored) != 10 {
		t.Fatalf("restored = %d", len(restored))
	}
	for i, card := range restored {
		if card.ID != fmt.Sprintf("card-%d", i) {
			t.Fatalf("position %d holds %s, initial order not restored", i, card.ID)
		}
	}
	inHand, _ := table.ContainerContents(hand.ID)
	if len(inHand) != 0 {
		t.Errorf("hand still holds deck cards: %v", inHand)
	}
}

func TestDealRoundRobins(t *testing.T) {
	table, deck, _, hand := newTestTable(t)
	gmHand, _, err := table.AddGMArea("GM")
	if err != nil {
		t.Fatal(err)
	}

	dealt, err := table.Deal(context.Background(), deck, []*stack.Container{hand, gmHand}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(dealt) != 4 {
		t.Fatalf("dealt = %d", len(dealt))
	}
	inHand, _ := table.ContainerContents(hand.ID)
	inGM, _ := table.ContainerContents(gmHand.ID)
	if len(inHand) != 2 || len(inGM) != 2 {
		t.Errorf("hand = %d, gm = %d, want 2 each", len(inHand), len(inGM))
	}
}

func TestDirectoryResolution(t *testing.T) {
	table, deck, discard, hand := newTestTable(t)

	gotDeck, err := table.DeckFor("tarot")
	if err != nil || gotDeck.ID != deck.ID {
		t.Errorf("DeckFor = %v, %v", gotDeck, err)
	}
	gotPile, err := table.DiscardFor("tarot")
	if err != nil || gotPile.ID != discard.ID {
		t.Errorf("DiscardFor = %v, %v", gotPile, err)
	}
	gotHand, err := table.HandFor(stack.ForPlayer("p1"))
	if err != nil || gotHand.ID != hand.ID {
		t.Errorf("HandFor = %v, %v", gotHand, err)
	}
	if !table.IsDiscard(discard) {
		t.Error("discard pile not recognized")
	}
	if table.IsDiscard(deck) {
		t.Error("deck misidentified as discard")
	}
	if _, err := table.DeckFor("missing"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestFaceCursor(t *testing.T) {
	table, deck, _, _ := newTestTable(t)

	table.SetFaceCursor(deck.ID, "card-3")
	if cardID, ok := table.FaceCursor(deck.ID); !ok || cardID != "card-3" {
		t.Fatalf("cursor = %q, %v", cardID, ok)
	}
	if err := table.ClearFaceCursor(context.Background(), deck); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.FaceCursor(deck.ID); ok {
		t.Error("cursor survived clear")
	}
}

func TestShuffleRights(t *testing.T) {
	table, _, _, _ := newTestTable(t)

	if table.CanShuffle(transfer.Actor{Kind: transfer.ActorPlayer}, nil) {
		t.Error("players may not shuffle")
	}
	if !table.CanShuffle(transfer.Actor{Kind: transfer.ActorGM}, nil) {
		t.Error("gms may shuffle")
	}
}
