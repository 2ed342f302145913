package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
)

// CardInspectInput selects one card on the table.
type CardInspectInput struct {
	CardID string `json:"card_id" jsonschema:"card identifier"`
}

// CustomActionView is one extra per-card action offered by the deck kind.
type CustomActionView struct {
	ID      string `json:"id" jsonschema:"custom action id"`
	NameKey string `json:"name_key" jsonschema:"display name message key"`
}

// CardInspectResult reports the card's behavior-driven presentation.
type CardInspectResult struct {
	Card    CardView           `json:"card"`
	Rotated bool               `json:"rotated" jsonschema:"whether the card renders rotated"`
	Actions []CustomActionView `json:"actions,omitempty"`
}

// CardInspectTool defines the MCP tool schema for inspecting a card.
func CardInspectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "card_inspect",
		Description: "Reports a card's rotation hint and the extra actions its deck kind offers",
	}
}

// CardInspectHandler resolves a card and renders it through the deck kind's
// behavior.
func CardInspectHandler(svc *app.Service, table *containers.Table) mcp.ToolHandlerFor[CardInspectInput, CardInspectResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CardInspectInput) (*mcp.CallToolResult, CardInspectResult, error) {
		cards, err := table.Cards([]string{input.CardID})
		if err != nil {
			return nil, CardInspectResult{}, err
		}
		card := cards[0]
		behavior := svc.Registry().Behavior(card.CoreStackKey)
		result := CardInspectResult{
			Card:    toCardView(card),
			Rotated: behavior.ShouldRotate(card),
		}
		for _, extra := range behavior.ExtraActions(card) {
			result.Actions = append(result.Actions, CustomActionView{ID: extra.ID, NameKey: extra.NameKey})
		}
		return nil, result, nil
	}
}

// CardActInput invokes one custom action on a card.
type CardActInput struct {
	CardID   string `json:"card_id" jsonschema:"card identifier"`
	ActionID string `json:"action_id" jsonschema:"custom action id"`
}

// CardActResult echoes the executed action.
type CardActResult struct {
	CardID   string `json:"card_id"`
	ActionID string `json:"action_id"`
}

// CardActTool defines the MCP tool schema for custom card actions.
func CardActTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "card_act",
		Description: "Executes one of the extra actions a card's deck kind offers",
	}
}

// CardActHandler dispatches a custom action to the deck kind's behavior.
func CardActHandler(svc *app.Service, table *containers.Table) mcp.ToolHandlerFor[CardActInput, CardActResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CardActInput) (*mcp.CallToolResult, CardActResult, error) {
		cards, err := table.Cards([]string{input.CardID})
		if err != nil {
			return nil, CardActResult{}, err
		}
		card := cards[0]
		behavior := svc.Registry().Behavior(card.CoreStackKey)
		if err := behavior.OnCustomAction(ctx, card, input.ActionID); err != nil {
			return nil, CardActResult{}, err
		}
		return nil, CardActResult{CardID: card.ID, ActionID: input.ActionID}, nil
	}
}
