package ports

import (
	"context"

	"github.com/todoapp/core/internal/domain/entities"
)

// IdentityService interface for device identity resolution
type IdentityService interface {
	Resolve(ctx context.Context, deviceID string) (*entities.User, error)
}

// TodoService interface for todo operations
type TodoService interface {
	ListTodos(ctx context.Context, deviceID, categoryParam string) ([]*entities.Todo, error)
	CreateTodo(ctx context.Context, deviceID string, req CreateTodoRequest) (*entities.Todo, error)
	UpdateTodo(ctx context.Context, deviceID string, id int64, req UpdateTodoRequest) (*entities.Todo, error)
	DeleteTodo(ctx context.Context, deviceID string, id int64) error
}

// Request types

// CreateTodoRequest carries the create payload. Category is optional and
// defaults to the catch-all tag.
type CreateTodoRequest struct {
	Title    string  `json:"title" validate:"required"`
	Category *string `json:"category,omitempty"`
}

// UpdateTodoRequest carries a partial update; only non-nil fields change.
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
