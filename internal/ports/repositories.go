package ports

import (
	"context"

	"github.com/todoapp/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Upsert inserts a user by email or returns the existing row. The
	// update clause must be a no-op so concurrent first requests from the
	// same device resolve to a single row without erroring.
	Upsert(ctx context.Context, email, name string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	// GetOwned returns the todo only when it belongs to userID; a todo
	// owned by another user reports entities.ErrTodoNotFound.
	GetOwned(ctx context.Context, id, userID int64) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64, filter TodoFilter) ([]*entities.Todo, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

// TodoFilter narrows List results. A nil Category means no filtering.
type TodoFilter struct {
	Category *entities.Category
}
