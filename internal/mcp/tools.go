package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/itemboard/internal/domain/item"
)

// MessageDatabaseError is the text of every failed tool call.
const MessageDatabaseError = "Database error"

type EmptyParams struct{}

type CreateItemParams struct {
	Name        *string `json:"name" jsonschema:"display name of the item"`
	Description *string `json:"description,omitempty" jsonschema:"optional free-text description"`
}

type DeleteItemParams struct {
	ID int64 `json:"id" jsonschema:"id of the item to delete"`
}

// DeleteItemResult is returned by delete_item.
type DeleteItemResult struct {
	Deleted int64 `json:"deleted"`
}

func registerTools(server *sdkmcp.Server, items ItemService, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "health",
		Description: "Report service status and the current server time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return jsonResult(items.Health(ctx))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_items",
		Description: "List all items ordered by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		list, err := items.List(ctx)
		if err != nil {
			return toolError(logger, "list_items", err)
		}
		return jsonResult(list)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_item",
		Description: "Create an item; the store assigns its id and creation time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateItemParams) (*sdkmcp.CallToolResult, any, error) {
		created, err := items.Create(ctx, item.NewItem{Name: in.Name, Description: in.Description})
		if err != nil {
			return toolError(logger, "create_item", err)
		}
		return jsonResult(created)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_item",
		Description: "Delete an item by id; unknown ids are ignored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteItemParams) (*sdkmcp.CallToolResult, any, error) {
		if err := items.Delete(ctx, in.ID); err != nil {
			return toolError(logger, "delete_item", err)
		}
		return jsonResult(DeleteItemResult{Deleted: in.ID})
	})
}

func jsonResult(payload any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// toolError reports a store failure as a tool-level error so the model sees
// it, while the cause only goes to the log.
func toolError(logger *slog.Logger, tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	logger.Error("database error", "tool", tool, "error", err)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: MessageDatabaseError}},
	}, nil, nil
}
