package testserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/rpggio/itemboard/internal/mcp"
	"github.com/rpggio/itemboard/internal/store"
	"github.com/rpggio/itemboard/internal/transport"
)

// TestServer is the full HTTP stack over a private in-memory SQLite store.
type TestServer struct {
	Server *httptest.Server
	DB     *store.DB
	Items  *item.Service
}

// New starts a server with the schema bootstrapped and seed data inserted.
func New(t *testing.T) *TestServer {
	t.Helper()

	ts := NewUnseeded(t)
	seeded, err := ts.Items.Bootstrap(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	return ts
}

// NewUnseeded starts a server without running bootstrap.
func NewUnseeded(t *testing.T) *TestServer {
	t.Helper()

	db, err := store.New(store.SQLite, ":memory:")
	require.NoError(t, err)

	itemSvc := item.NewService(store.NewItemRepository(db), nil)
	mcpServer := mcp.NewServer(mcp.Config{Items: itemSvc})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Items: itemSvc,
		MCP:   mcp.NewHTTPHandler(mcpServer),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		Items:  itemSvc,
	}
}

// APIURL is the base URL of the REST API.
func (ts *TestServer) APIURL() string {
	return ts.Server.URL + "/api"
}
