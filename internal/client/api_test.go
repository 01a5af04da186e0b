package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/core/internal/domain/entities"
)

func TestHTTPClient_SendsDeviceHeader(t *testing.T) {
	var gotDevice, gotCategory string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDevice = r.Header.Get(HeaderDeviceID)
		gotCategory = r.URL.Query().Get("category")
		json.NewEncoder(w).Encode([]entities.Todo{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	todos, err := c.ListTodos(context.Background(), "dev-42", "CART")
	require.NoError(t, err)

	assert.Empty(t, todos)
	assert.Equal(t, "dev-42", gotDevice)
	assert.Equal(t, "CART", gotCategory)
}

func TestHTTPClient_CreateDecodesCreatedTodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buy milk", body["title"])
		assert.Equal(t, "CART", body["category"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entities.Todo{ID: 5, Title: "buy milk", Category: entities.CategoryCart})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	todo, err := c.CreateTodo(context.Background(), "dev-1", "buy milk", entities.CategoryCart)
	require.NoError(t, err)

	assert.Equal(t, int64(5), todo.ID)
	assert.Equal(t, entities.CategoryCart, todo.Category)
}

func TestHTTPClient_UpdateSendsOnlySuppliedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/todos/9", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["completed"])
		_, hasTitle := body["title"]
		assert.False(t, hasTitle)

		json.NewEncoder(w).Encode(entities.Todo{ID: 9, Completed: true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	completed := true
	todo, err := c.UpdateTodo(context.Background(), "dev-1", 9, nil, &completed)
	require.NoError(t, err)
	assert.True(t, todo.Completed)
}

func TestHTTPClient_DeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	assert.NoError(t, c.DeleteTodo(context.Background(), "dev-1", 3))
}

func TestHTTPClient_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Todo not found"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	err := c.DeleteTodo(context.Background(), "dev-1", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Todo not found")
}
