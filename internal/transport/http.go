package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rpggio/itemboard/internal/domain/item"
)

// ItemService defines the item operations served over HTTP.
type ItemService interface {
	Health(ctx context.Context) item.Health
	List(ctx context.Context) ([]item.Item, error)
	Create(ctx context.Context, in item.NewItem) (*item.Item, error)
	Delete(ctx context.Context, id int64) error
}

// Config wires the HTTP server.
type Config struct {
	Items  ItemService
	Logger *slog.Logger
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// Server holds the HTTP handlers.
type Server struct {
	items  ItemService
	logger *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}))

	srv := &Server{items: cfg.Items, logger: logger}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", srv.handleHealth)
		r.Get("/items", srv.handleListItems)
		r.Post("/items", srv.handleCreateItem)
		r.Delete("/items/{id:[0-9]+}", srv.handleDeleteItem)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.items.Health(r.Context()))
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "list_items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in item.NewItem
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	created, err := s.items.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, "create_item", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// Digits only reach here, so this is an out-of-range id. The store
		// would reject it the same way.
		s.writeServiceError(w, r, "delete_item", err)
		return
	}

	if err := s.items.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, "delete_item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
