package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

// PlayerAddInput seats a new player at the table.
type PlayerAddInput struct {
	PlayerID string `json:"player_id" jsonschema:"player identifier"`
	Name     string `json:"name,omitempty" jsonschema:"display name, defaults to the id"`
}

// PlayerAddResult reports the created areas.
type PlayerAddResult struct {
	PlayerID string `json:"player_id"`
	HandID   string `json:"hand_id"`
	RevealID string `json:"reveal_id"`
}

// PlayerAddTool defines the MCP tool schema for seating a player.
func PlayerAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "player_add",
		Description: "Seats a player at the table, creating their hand and reveal area",
	}
}

// PlayerAddHandler creates a player's hand and reveal pile. Seating the same
// player twice is rejected so existing areas are never orphaned.
func PlayerAddHandler(table *containers.Table) mcp.ToolHandlerFor[PlayerAddInput, PlayerAddResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PlayerAddInput) (*mcp.CallToolResult, PlayerAddResult, error) {
		playerID := strings.TrimSpace(input.PlayerID)
		if playerID == "" {
			return nil, PlayerAddResult{}, fmt.Errorf("player id is required")
		}
		if _, err := table.HandFor(stack.ForPlayer(playerID)); err == nil {
			return nil, PlayerAddResult{}, fmt.Errorf("player %s is already seated", playerID)
		}
		name := input.Name
		if name == "" {
			name = playerID
		}
		hand, reveal, err := table.AddPlayer(playerID, name)
		if err != nil {
			return nil, PlayerAddResult{}, err
		}
		return nil, PlayerAddResult{PlayerID: playerID, HandID: hand.ID, RevealID: reveal.ID}, nil
	}
}
