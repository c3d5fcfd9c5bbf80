package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/itemboard/internal/domain/item"
)

const serverInstructions = `Manage a flat list of items. Each item has a numeric id, a name, an optional description and a creation time.
Use list_items to read the current list, create_item to add one and delete_item to remove one by id.
Deleting an id that does not exist succeeds.`

// ItemService defines item operations needed by MCP.
type ItemService interface {
	Health(ctx context.Context) item.Health
	List(ctx context.Context) ([]item.Item, error)
	Create(ctx context.Context, in item.NewItem) (*item.Item, error)
	Delete(ctx context.Context, id int64) error
}

// Config contains server configuration.
type Config struct {
	Items   ItemService
	Logger  *slog.Logger
	Version string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "itemboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Items, logger)

	return server
}

// NewHTTPHandler serves the MCP server over streamable HTTP.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
}
