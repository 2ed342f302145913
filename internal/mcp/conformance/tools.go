//go:build conformance

package conformance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
)

const (
	simpleTextResponse    = "The card table is ready."
	errorTextResponse     = "The card table rejected this request."
	errorHandlingResponse = "this tool intentionally fails"
	locationsResourceName = "test_locations"
	locationsResourceURI  = "test://locations"
)

// Register adds conformance-only MCP fixtures (tools, prompts, resources).
func Register(mcpServer *mcp.Server) {
	if mcpServer == nil {
		return
	}

	mcp.AddTool(mcpServer, simpleTextTool(), simpleTextHandler())
	mcp.AddTool(mcpServer, errorContentTool(), errorContentHandler())
	mcp.AddTool(mcpServer, errorHandlingTool(), errorHandlingHandler())
	mcpServer.AddPrompt(drawPrompt(), drawPromptHandler())
	mcpServer.AddResource(locationsResource(), locationsResourceHandler())
}

// simpleTextTool defines the conformance tool schema for plain text output.
func simpleTextTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "test_simple_text",
		Description: "Conformance tool that returns a simple text response.",
	}
}

func simpleTextHandler() mcp.ToolHandlerFor[struct{}, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: simpleTextResponse},
			},
		}, nil, nil
	}
}

// errorContentTool defines the conformance tool schema for error responses.
func errorContentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "test_error_content",
		Description: "Conformance tool that returns an error response.",
	}
}

func errorContentHandler() mcp.ToolHandlerFor[struct{}, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: errorTextResponse},
			},
		}, nil, nil
	}
}

// errorHandlingTool defines the conformance tool schema for protocol errors.
func errorHandlingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "test_error_handling",
		Description: "Conformance tool that always returns a tool error.",
	}
}

func errorHandlingHandler() mcp.ToolHandlerFor[struct{}, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return nil, nil, fmt.Errorf("%s", errorHandlingResponse)
	}
}

func drawPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "test_draw_prompt",
		Description: "Conformance prompt that asks for a card to be drawn.",
	}
}

func drawPromptHandler() mcp.PromptHandler {
	return func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: "Draw one card from the shared deck into my hand.",
					},
				},
			},
		}, nil
	}
}

// locationsResource defines a readable fixture listing the table's card
// locations by wire code.
func locationsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        locationsResourceName,
		Description: "Conformance resource listing the card locations of the table.",
		MIMEType:    "application/json",
		URI:         locationsResourceURI,
	}
}

func locationsResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		locations := map[string]string{}
		for _, category := range stack.Categories() {
			locations[category.Code()] = category.String()
		}
		payload, err := json.Marshal(locations)
		if err != nil {
			return nil, fmt.Errorf("marshal locations: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      locationsResourceURI,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			},
		}, nil
	}
}
