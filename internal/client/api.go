package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/itemboard/internal/domain/item"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// API talks to the item HTTP API rooted at BaseURL (e.g. http://host:8080/api).
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates a client. A nil httpClient gets a 30s default timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// BaseURL returns the API location the client talks to.
func (a *API) BaseURL() string {
	return a.baseURL
}

// Health calls GET /health.
func (a *API) Health(ctx context.Context) (item.Health, error) {
	var health item.Health
	err := a.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &health)
	return health, err
}

// ListItems calls GET /items.
func (a *API) ListItems(ctx context.Context) ([]item.Item, error) {
	var items []item.Item
	if err := a.do(ctx, http.MethodGet, "/items", nil, http.StatusOK, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}

// CreateItem calls POST /items with the draft's fields.
func (a *API) CreateItem(ctx context.Context, draft Draft) (*item.Item, error) {
	name := draft.Name
	description := draft.Description
	body := item.NewItem{Name: &name, Description: &description}

	var created item.Item
	if err := a.do(ctx, http.MethodPost, "/items", body, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteItem calls DELETE /items/{id}.
func (a *API) DeleteItem(ctx context.Context, id int64) error {
	return a.do(ctx, http.MethodDelete, "/items/"+strconv.FormatInt(id, 10), nil, http.StatusNoContent, nil)
}

func (a *API) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil || errors.Is(err, io.EOF) {
		apiErr.Message = body.Error
	}
	return apiErr
}
