package mcp

import (
	"fmt"

	"github.com/louisbranch/cardtable/internal/platform/id"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

// standardDeckKey is the deck kind registered by default.
const standardDeckKey = "standard"

var (
	suits = []string{"Spades", "Hearts", "Diamonds", "Clubs"}
	ranks = []string{"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King"}
)

// standardDeckCards builds a 54-card playing deck, jokers included.
func standardDeckCards() ([]stack.Card, error) {
	cards := make([]stack.Card, 0, len(suits)*len(ranks)+2)
	for _, suit := range suits {
		for _, rank := range ranks {
			cardID, err := id.NewID()
			if err != nil {
				return nil, err
			}
			cards = append(cards, stack.Card{
				ID:   cardID,
				Name: fmt.Sprintf("%s of %s", rank, suit),
			})
		}
	}
	for _, name := range []string{"Red Joker", "Black Joker"} {
		cardID, err := id.NewID()
		if err != nil {
			return nil, err
		}
		cards = append(cards, stack.Card{ID: cardID, Name: name})
	}
	return cards, nil
}
