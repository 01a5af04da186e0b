package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/todoapp/core/internal/domain/entities"
)

// API is the surface of the todo backend the view-model talks to.
type API interface {
	ListTodos(ctx context.Context, deviceID, category string) ([]entities.Todo, error)
	CreateTodo(ctx context.Context, deviceID, title string, category entities.Category) (entities.Todo, error)
	UpdateTodo(ctx context.Context, deviceID string, id int64, title *string, completed *bool) (entities.Todo, error)
	DeleteTodo(ctx context.Context, deviceID string, id int64) error
}

// HeaderDeviceID mirrors the header name the server authenticates with.
const HeaderDeviceID = "X-Device-Id"

// HTTPClient is the REST client for the todo backend
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new REST client
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListTodos(ctx context.Context, deviceID, category string) ([]entities.Todo, error) {
	url := c.baseURL + "/todos"
	if category != "" {
		url += "?category=" + category
	}

	var todos []entities.Todo
	if err := c.do(ctx, http.MethodGet, url, deviceID, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, deviceID, title string, category entities.Category) (entities.Todo, error) {
	body := map[string]interface{}{
		"title":    title,
		"category": category,
	}

	var todo entities.Todo
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/todos", deviceID, body, &todo); err != nil {
		return entities.Todo{}, err
	}
	return todo, nil
}

func (c *HTTPClient) UpdateTodo(ctx context.Context, deviceID string, id int64, title *string, completed *bool) (entities.Todo, error) {
	body := map[string]interface{}{}
	if title != nil {
		body["title"] = *title
	}
	if completed != nil {
		body["completed"] = *completed
	}

	var todo entities.Todo
	url := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	if err := c.do(ctx, http.MethodPatch, url, deviceID, body, &todo); err != nil {
		return entities.Todo{}, err
	}
	return todo, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, deviceID string, id int64) error {
	url := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	return c.do(ctx, http.MethodDelete, url, deviceID, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url, deviceID string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(HeaderDeviceID, deviceID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, url, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
