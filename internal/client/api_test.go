package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/stretchr/testify/require"
)

func TestAPI_ListItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"a","description":null,"created_at":"2026-10-17T08:00:00Z"}]`))
	}))
	t.Cleanup(server.Close)

	api := NewAPI(server.URL+"/api/", nil)
	require.Equal(t, server.URL+"/api", api.BaseURL())

	items, err := api.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "a", items[0].Name)
	require.Nil(t, items[0].Description)
	require.Equal(t, time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC), items[0].CreatedAt)
}

func TestAPI_CreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Widget", body["name"])
		require.Equal(t, "x", body["description"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(item.Item{ID: 4, Name: body["name"], CreatedAt: time.Now()})
	}))
	t.Cleanup(server.Close)

	created, err := NewAPI(server.URL, nil).CreateItem(context.Background(), Draft{Name: "Widget", Description: "x"})
	require.NoError(t, err)
	require.Equal(t, int64(4), created.ID)
}

func TestAPI_DeleteItem(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	require.NoError(t, NewAPI(server.URL, nil).DeleteItem(context.Background(), 7))
	require.Equal(t, "/items/7", path)
}

func TestAPI_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Database error"}`))
	}))
	t.Cleanup(server.Close)

	_, err := NewAPI(server.URL, nil).ListItems(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "Database error", apiErr.Message)
}

func TestAPI_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	err := NewAPI(server.URL, nil).DeleteItem(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestAPI_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewAPI(url, nil).ListItems(context.Background())
	require.Error(t, err)
}
