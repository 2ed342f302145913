// Package domain defines the MCP tool and resource surface of the card
// table: schemas, handlers, and the mapping onto the table services.
package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/services/table/actionview"
	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

// ActionGroupsInput selects a deck kind and optionally narrows to one group.
type ActionGroupsInput struct {
	CoreKey string `json:"core_key" jsonschema:"deck kind key"`
	GroupID string `json:"group_id,omitempty" jsonschema:"optional action group id"`
}

// ActionEntryView is one movement offered by a group.
type ActionEntryView struct {
	Signature string `json:"signature" jsonschema:"canonical action signature"`
	From      string `json:"from" jsonschema:"origin location code"`
	Target    string `json:"target" jsonschema:"destination location code"`
	NameKey   string `json:"name_key" jsonschema:"display name message key"`
	Enabled   bool   `json:"enabled" jsonschema:"whether the entry is offered"`
}

// ActionGroupView is one catalog group with its rendered entries.
type ActionGroupView struct {
	ID      string            `json:"id" jsonschema:"action group id"`
	NameKey string            `json:"name_key" jsonschema:"display name message key"`
	Used    bool              `json:"used" jsonschema:"whether any entry is enabled"`
	Entries []ActionEntryView `json:"entries"`
}

// ActionGroupsResult lists the rendered groups.
type ActionGroupsResult struct {
	Groups []ActionGroupView `json:"groups"`
}

// ActionGroupsTool defines the MCP tool schema for reading action groups.
func ActionGroupsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "action_groups",
		Description: "Lists the action groups of a deck kind with their enabled state",
	}
}

// ActionGroupsHandler renders the catalog against a deck's configuration.
func ActionGroupsHandler(svc *app.Service) mcp.ToolHandlerFor[ActionGroupsInput, ActionGroupsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ActionGroupsInput) (*mcp.CallToolResult, ActionGroupsResult, error) {
		views := svc.Views()
		var result ActionGroupsResult
		if input.GroupID != "" {
			view := views.ActionGroupDetails(input.CoreKey, action.GroupID(input.GroupID))
			if view == nil {
				return nil, ActionGroupsResult{}, fmt.Errorf("action group %q is not known", input.GroupID)
			}
			result.Groups = append(result.Groups, toGroupView(*view))
			return nil, result, nil
		}
		for _, view := range views.AllGroupsDetails(input.CoreKey) {
			result.Groups = append(result.Groups, toGroupView(view))
		}
		return nil, result, nil
	}
}

// StackConfigSetInput toggles one signature of one deck kind.
type StackConfigSetInput struct {
	CoreKey   string `json:"core_key" jsonschema:"deck kind key"`
	Signature string `json:"signature" jsonschema:"canonical action signature"`
	Enabled   bool   `json:"enabled" jsonschema:"whether the action is offered"`
}

// StackConfigSetResult echoes the stored state.
type StackConfigSetResult struct {
	CoreKey   string `json:"core_key"`
	Signature string `json:"signature"`
	Enabled   bool   `json:"enabled"`
}

// StackConfigSetTool defines the MCP tool schema for toggling an action.
func StackConfigSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stack_config_set",
		Description: "Enables or disables one action signature for a deck kind",
	}
}

// StackConfigSetHandler persists a single-signature toggle.
func StackConfigSetHandler(svc *app.Service) mcp.ToolHandlerFor[StackConfigSetInput, StackConfigSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StackConfigSetInput) (*mcp.CallToolResult, StackConfigSetResult, error) {
		sig, err := action.ParseSignature(input.Signature)
		if err != nil {
			return nil, StackConfigSetResult{}, err
		}
		def, err := svc.Registry().Get(input.CoreKey)
		if err != nil {
			return nil, StackConfigSetResult{}, err
		}
		config := def.Config.Clone()
		if config == nil {
			config = stackconfig.Config{}
		}
		config[sig] = input.Enabled
		if err := svc.SetStackConfig(ctx, input.CoreKey, config); err != nil {
			return nil, StackConfigSetResult{}, err
		}
		return nil, StackConfigSetResult{
			CoreKey:   input.CoreKey,
			Signature: sig.String(),
			Enabled:   input.Enabled,
		}, nil
	}
}

// GlobalFlagsSetInput replaces the table-wide capability toggles.
type GlobalFlagsSetInput struct {
	HandStacksEnabled   bool `json:"hand_stacks_enabled" jsonschema:"whether hand areas exist"`
	RevealStacksEnabled bool `json:"reveal_stacks_enabled" jsonschema:"whether reveal areas exist"`
}

// GlobalFlagsSetResult echoes the stored toggles.
type GlobalFlagsSetResult struct {
	HandStacksEnabled   bool `json:"hand_stacks_enabled"`
	RevealStacksEnabled bool `json:"reveal_stacks_enabled"`
}

// GlobalFlagsSetTool defines the MCP tool schema for global toggles.
func GlobalFlagsSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "global_flags_set",
		Description: "Sets the table-wide hand and reveal capability toggles",
	}
}

// GlobalFlagsSetHandler persists the global toggles.
func GlobalFlagsSetHandler(svc *app.Service) mcp.ToolHandlerFor[GlobalFlagsSetInput, GlobalFlagsSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GlobalFlagsSetInput) (*mcp.CallToolResult, GlobalFlagsSetResult, error) {
		flags := stackconfig.GlobalFlags{
			HandStacksEnabled:   input.HandStacksEnabled,
			RevealStacksEnabled: input.RevealStacksEnabled,
		}
		if err := svc.SetGlobalFlags(ctx, flags); err != nil {
			return nil, GlobalFlagsSetResult{}, err
		}
		return nil, GlobalFlagsSetResult(input), nil
	}
}

// CoreStackListPayload is the resource payload for declared deck kinds.
type CoreStackListPayload struct {
	Keys []string `json:"keys"`
}

// CoreStackListResource defines the readable deck kind listing.
func CoreStackListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "corestack_list",
		Title:       "Deck kinds",
		Description: "Readable listing of declared deck kinds",
		MIMEType:    "application/json",
		URI:         "corestacks://list",
	}
}

// CoreStackListResourceHandler returns the declared deck kind keys.
func CoreStackListResourceHandler(svc *app.Service) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		payload, err := json.Marshal(CoreStackListPayload{Keys: svc.Registry().Keys()})
		if err != nil {
			return nil, fmt.Errorf("marshal deck kind listing: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(payload),
			}},
		}, nil
	}
}

func toGroupView(view actionview.GroupView) ActionGroupView {
	out := ActionGroupView{
		ID:      string(view.ID),
		NameKey: view.NameKey,
		Used:    view.Used,
		Entries: make([]ActionEntryView, 0, len(view.Entries)),
	}
	for _, entry := range view.Entries {
		out.Entries = append(out.Entries, ActionEntryView{
			Signature: entry.Signature,
			From:      entry.From.Code(),
			Target:    entry.Target.Code(),
			NameKey:   entry.NameKey,
			Enabled:   entry.Enabled,
		})
	}
	return out
}
