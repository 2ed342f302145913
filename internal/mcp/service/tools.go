package service

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/mcp/domain"
	"github.com/louisbranch/cardtable/internal/services/table/app"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
	"github.com/louisbranch/cardtable/internal/services/table/transfer"
)

// localized rewrites handler errors into user-facing messages for the
// configured locale before they reach the client.
func localized[I, O any](locale string, handler mcp.ToolHandlerFor[I, O]) mcp.ToolHandlerFor[I, O] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input I) (*mcp.CallToolResult, O, error) {
		result, output, err := handler(ctx, req, input)
		return result, output, domain.LocalizedError(locale, err)
	}
}

func registerConfigTools(mcpServer *mcp.Server, svc *app.Service, locale string) {
	mcp.AddTool(mcpServer, domain.ActionGroupsTool(), localized(locale, domain.ActionGroupsHandler(svc)))
	mcp.AddTool(mcpServer, domain.StackConfigSetTool(), localized(locale, domain.StackConfigSetHandler(svc)))
	mcp.AddTool(mcpServer, domain.GlobalFlagsSetTool(), localized(locale, domain.GlobalFlagsSetHandler(svc)))
}

func registerCardTools(mcpServer *mcp.Server, svc *app.Service, table *containers.Table, locale string) {
	mcp.AddTool(mcpServer, domain.CardInspectTool(), localized(locale, domain.CardInspectHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.CardActTool(), localized(locale, domain.CardActHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.PlayerAddTool(), localized(locale, domain.PlayerAddHandler(table)))
}

func registerTransferTools(mcpServer *mcp.Server, svc *transfer.Service, table *containers.Table, locale string) {
	mcp.AddTool(mcpServer, domain.DrawTool(), localized(locale, domain.DrawHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.GiveTool(), localized(locale, domain.GiveHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ExchangeTool(), localized(locale, domain.ExchangeHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.DiscardTool(), localized(locale, domain.DiscardHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.PlayTool(), localized(locale, domain.PlayHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.RevealTool(), localized(locale, domain.RevealHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ReturnToHandTool(), localized(locale, domain.ReturnToHandHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ReturnToDeckTool(), localized(locale, domain.ReturnToDeckHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.DealTool(), localized(locale, domain.DealHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ShuffleDeckTool(), localized(locale, domain.ShuffleDeckHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ResetDeckTool(), localized(locale, domain.ResetDeckHandler(svc, table)))
	mcp.AddTool(mcpServer, domain.ShuffleDiscardTool(), localized(locale, domain.ShuffleDiscardHandler(svc, table)))
}

// registerConfigResources registers readable configuration MCP resources.
func registerConfigResources(mcpServer *mcp.Server, svc *app.Service) {
	mcpServer.AddResource(domain.CoreStackListResource(), domain.CoreStackListResourceHandler(svc))
}

// registerTableResources registers readable table state MCP resources.
func registerTableResources(mcpServer *mcp.Server, table *containers.Table, audit storage.AuditEventStore, locale string) {
	mcpServer.AddResource(domain.ContainerListResource(), domain.ContainerListResourceHandler(table))
	mcpServer.AddResource(domain.AuditFeedResource(), domain.AuditFeedResourceHandler(audit, locale))
}
