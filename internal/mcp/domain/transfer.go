package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

// ActorInput identifies who invokes a transfer.
type ActorInput struct {
	Kind string `json:"actor_kind" jsonschema:"gm or player"`
	ID   string `json:"actor_id" jsonschema:"actor identifier"`
	Name string `json:"actor_name,omitempty" jsonschema:"display name for the table feed"`
}

func (a ActorInput) actor() (transfer.Actor, error) {
	kind := transfer.ActorKind(a.Kind)
	if kind != transfer.ActorGM && kind != transfer.ActorPlayer {
		return transfer.Actor{}, fmt.Errorf("actor kind %q must be gm or player", a.Kind)
	}
	name := a.Name
	if name == "" {
		name = a.ID
	}
	return transfer.Actor{Kind: kind, ID: a.ID, Name: name}, nil
}

// CardView is the wire shape of a moved card.
type CardView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	CoreKey string `json:"core_key"`
	FaceUp  bool   `json:"face_up"`
	Rotated bool   `json:"rotated"`
}

// TransferResult reports the cards affected by an operation.
type TransferResult struct {
	Cards []CardView `json:"cards"`
}

func toCardView(card stack.Card) CardView {
	return CardView{
		ID:      card.ID,
		Name:    card.Name,
		CoreKey: card.CoreStackKey,
		FaceUp:  card.FaceUp,
		Rotated: card.Rotated,
	}
}

func toTransferResult(cards []stack.Card) TransferResult {
	result := TransferResult{Cards: make([]CardView, 0, len(cards))}
	for _, card := range cards {
		result.Cards = append(result.Cards, toCardView(card))
	}
	return result
}

// DrawInput pulls cards from a container.
type DrawInput struct {
	ActorInput
	ContainerID string `json:"container_id" jsonschema:"source container id"`
	Amount      int    `json:"amount,omitempty" jsonschema:"cards to draw, default 1"`
}

// DrawTool defines the MCP tool schema for drawing cards.
func DrawTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_draw", Description: "Draws cards from a gm- or player-owned container"}
}

// DrawHandler executes a draw.
func DrawHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[DrawInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DrawInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		from, err := table.Container(input.ContainerID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := svc.Draw(ctx, actor, from, input.Amount)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}

// GiveInput passes deck cards to a recipient container.
type GiveInput struct {
	ActorInput
	SourceID    string   `json:"source_id" jsonschema:"shared deck container id"`
	RecipientID string   `json:"recipient_id" jsonschema:"destination container id"`
	CardIDs     []string `json:"card_ids" jsonschema:"cards to pass"`
}

// GiveTool defines the MCP tool schema for giving cards.
func GiveTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_give", Description: "Passes cards from the shared deck to a recipient container"}
}

// GiveHandler executes a give.
func GiveHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[GiveInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GiveInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		recipient, err := table.Container(input.RecipientID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := svc.Give(ctx, actor, source, recipient, input.CardIDs)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}

// ExchangeInput swaps two disjoint card sets between two containers.
type ExchangeInput struct {
	ActorInput
	ContainerAID string   `json:"container_a_id" jsonschema:"first container id"`
	ContainerBID string   `json:"container_b_id" jsonschema:"second container id"`
	CardsFromA   []string `json:"cards_from_a" jsonschema:"cards moving from the first container"`
	CardsFromB   []string `json:"cards_from_b" jsonschema:"cards moving from the second container"`
}

// ExchangeTool defines the MCP tool schema for exchanging cards.
func ExchangeTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_exchange", Description: "Swaps two disjoint card sets between two containers"}
}

// ExchangeHandler executes an exchange.
func ExchangeHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[ExchangeInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExchangeInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		a, err := table.Container(input.ContainerAID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		b, err := table.Container(input.ContainerBID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := svc.Exchange(ctx, actor, a, b, input.CardsFromA, input.CardsFromB)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}

// CardSetInput names a source container and a card set.
type CardSetInput struct {
	ActorInput
	SourceID string   `json:"source_id" jsonschema:"source container id"`
	CardIDs  []string `json:"card_ids" jsonschema:"cards to move"`
}

// DiscardTool defines the MCP tool schema for discarding cards.
func DiscardTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_discard", Description: "Routes cards to the discard pile of each card's own deck kind"}
}

// DiscardHandler executes a discard.
func DiscardHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[CardSetInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CardSetInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := table.Cards(input.CardIDs)
		if err != nil {
			return nil, TransferResult{}, err
		}
		moved, err := svc.Discard(ctx, actor, source, cards)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(moved), nil
	}
}

// PlayTool defines the MCP tool schema for playing cards.
func PlayTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_play", Description: "Plays cards from a hand or reveal pile onto the matching discard"}
}

// PlayHandler executes a play.
func PlayHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[CardSetInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CardSetInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := table.Cards(input.CardIDs)
		if err != nil {
			return nil, TransferResult{}, err
		}
		moved, err := svc.Play(ctx, actor, source, cards)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(moved), nil
	}
}

// RevealTool defines the MCP tool schema for revealing cards.
func RevealTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_reveal", Description: "Turns hand cards face up into the owner's reveal pile"}
}

// RevealHandler executes a reveal.
func RevealHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[CardSetInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CardSetInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		moved, err := svc.Reveal(ctx, actor, source, input.CardIDs)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(moved), nil
	}
}

// ReturnToHandTool defines the MCP tool schema for taking revealed cards back.
func ReturnToHandTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_return_to_hand", Description: "Returns revealed cards to the pile owner's hand"}
}

// ReturnToHandHandler executes a return-to-hand.
func ReturnToHandHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[CardSetInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CardSetInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		moved, err := svc.ReturnToHand(ctx, actor, source, input.CardIDs)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(moved), nil
	}
}

// ReturnToDeckInput folds one card back into its deck.
type ReturnToDeckInput struct {
	ActorInput
	SourceID string `json:"source_id" jsonschema:"shared pile container id"`
	CardID   string `json:"card_id" jsonschema:"card to fold back"`
}

// ReturnToDeckTool defines the MCP tool schema for returning a card to its deck.
func ReturnToDeckTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_return_to_deck", Description: "Folds a card from a shared pile back into its deck and reshuffles"}
}

// ReturnToDeckHandler executes a return-to-deck.
func ReturnToDeckHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[ReturnToDeckInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReturnToDeckInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := table.Cards([]string{input.CardID})
		if err != nil {
			return nil, TransferResult{}, err
		}
		moved, err := svc.ReturnToDeck(ctx, actor, source, cards[0])
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(moved), nil
	}
}

// DealInput distributes deck cards to destinations.
type DealInput struct {
	ActorInput
	SourceID       string   `json:"source_id" jsonschema:"shared deck container id"`
	DestinationIDs []string `json:"destination_ids" jsonschema:"destination container ids"`
	Amount         int      `json:"amount,omitempty" jsonschema:"cards per destination, default 1"`
}

// DealTool defines the MCP tool schema for dealing cards.
func DealTool() *mcp.Tool {
	return &mcp.Tool{Name: "card_deal", Description: "Deals cards from the shared deck to a list of destinations"}
}

// DealHandler executes a deal.
func DealHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[DealInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DealInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		source, err := table.Container(input.SourceID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		destinations := make([]*stack.Container, 0, len(input.DestinationIDs))
		for _, destinationID := range input.DestinationIDs {
			destination, err := table.Container(destinationID)
			if err != nil {
				return nil, TransferResult{}, err
			}
			destinations = append(destinations, destination)
		}
		cards, err := svc.Deal(ctx, actor, source, destinations, input.Amount)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}

// DeckInput names a single shared container.
type DeckInput struct {
	ActorInput
	ContainerID string `json:"container_id" jsonschema:"shared container id"`
}

// ShuffleDeckTool defines the MCP tool schema for shuffling a deck.
func ShuffleDeckTool() *mcp.Tool {
	return &mcp.Tool{Name: "deck_shuffle", Description: "Shuffles the shared deck in place"}
}

// ShuffleDeckHandler executes a shuffle.
func ShuffleDeckHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[DeckInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeckInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		deck, err := table.Container(input.ContainerID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		if err := svc.ShuffleDeck(ctx, actor, deck); err != nil {
			return nil, TransferResult{}, err
		}
		return nil, TransferResult{}, nil
	}
}

// ResetDeckTool defines the MCP tool schema for resetting a deck.
func ResetDeckTool() *mcp.Tool {
	return &mcp.Tool{Name: "deck_reset", Description: "Rebuilds the shared deck, clears its face cursor, and reshuffles"}
}

// ResetDeckHandler executes a deck reset.
func ResetDeckHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[DeckInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeckInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		deck, err := table.Container(input.ContainerID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := svc.ResetDeck(ctx, actor, deck)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}

// ShuffleDiscardTool defines the MCP tool schema for folding a discard back in.
func ShuffleDiscardTool() *mcp.Tool {
	return &mcp.Tool{Name: "discard_shuffle_into_deck", Description: "Empties a discard pile back into its deck and reshuffles"}
}

// ShuffleDiscardHandler executes a shuffle-discard-into-deck.
func ShuffleDiscardHandler(svc *transfer.Service, table *containers.Table) mcp.ToolHandlerFor[DeckInput, TransferResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeckInput) (*mcp.CallToolResult, TransferResult, error) {
		actor, err := input.actor()
		if err != nil {
			return nil, TransferResult{}, err
		}
		pile, err := table.Container(input.ContainerID)
		if err != nil {
			return nil, TransferResult{}, err
		}
		cards, err := svc.ShuffleDiscardIntoDeck(ctx, actor, pile)
		if err != nil {
			return nil, TransferResult{}, err
		}
		return nil, toTransferResult(cards), nil
	}
}
