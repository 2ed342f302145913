package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/cardtable/internal/platform/i18n/catalog"
	"github.com/louisbranch/cardtable/internal/services/table/containers"
	"github.com/louisbranch/cardtable/internal/services/table/storage"
)

const auditFeedLimit = 50

// AuditEntryView is one rendered table feed entry.
type AuditEntryView struct {
	Timestamp time.Time `json:"timestamp"`
	EventName string    `json:"event_name"`
	Severity  string    `json:"severity"`
	CoreKey   string    `json:"core_key,omitempty"`
	ActorKind string    `json:"actor_kind,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	Message   string    `json:"message"`
}

// AuditFeedPayload is the resource payload for the table feed.
type AuditFeedPayload struct {
	Events []AuditEntryView `json:"events"`
}

// AuditFeedResource defines the readable table feed.
func AuditFeedResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "audit_feed",
		Title:       "Table feed",
		Description: "Recent table events, newest first",
		MIMEType:    "application/json",
		URI:         "audit://feed",
	}
}

// AuditFeedResourceHandler renders recent events against the message catalog.
func AuditFeedResourceHandler(store storage.AuditEventStore, locale string) mcp.ResourceHandler {
	bundle := catalog.Default()
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		events, err := store.ListAuditEvents(ctx, auditFeedLimit)
		if err != nil {
			return nil, fmt.Errorf("list table events: %w", err)
		}
		feed := AuditFeedPayload{Events: make([]AuditEntryView, 0, len(events))}
		for _, event := range events {
			message := event.Record.Key
			if template, ok := bundle.Message(locale, event.Record.Key); ok {
				message = event.Record.Render(template)
			}
			feed.Events = append(feed.Events, AuditEntryView{
				Timestamp: event.Timestamp,
				EventName: event.EventName,
				Severity:  string(event.Severity),
				CoreKey:   event.CoreKey,
				ActorKind: event.ActorKind,
				ActorID:   event.ActorID,
				Message:   message,
			})
		}
		payload, err := json.Marshal(feed)
		if err != nil {
			return nil, fmt.Errorf("marshal table feed: %w", err)
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

// ContainerView is the wire shape of a table container.
type ContainerView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Owner   string `json:"owner"`
	CoreKey string `json:"core_key,omitempty"`
	Cards   int    `json:"cards"`
}

// ContainerListPayload is the resource payload for table containers.
type ContainerListPayload struct {
	Containers []ContainerView `json:"containers"`
}

// ContainerListResource defines the readable container listing.
func ContainerListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "container_list",
		Title:       "Table containers",
		Description: "Decks, discard piles, hands, and reveal piles on the table",
		MIMEType:    "application/json",
		URI:         "containers://list",
	}
}

// ContainerListResourceHandler returns every container with its card count.
func ContainerListResourceHandler(table *containers.Table) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		listing := ContainerListPayload{}
		for _, container := range table.Containers() {
			contents, err := table.ContainerContents(container.ID)
			if err != nil {
				return nil, err
			}
			listing.Containers = append(listing.Containers, ContainerView{
				ID:      container.ID,
				Name:    container.Name,
				Type:    container.Type.String(),
				Owner:   container.Owner.String(),
				CoreKey: container.CoreStackKey,
				Cards:   len(contents),
			})
		}
		payload, err := json.Marshal(listing)
		if err != nil {
			return nil, fmt.Errorf("marshal container listing: %w", err)
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
