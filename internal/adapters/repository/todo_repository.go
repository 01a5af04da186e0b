package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/ports"
)

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sqlx.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	query := `
		INSERT INTO todos (user_id, title, completed, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		todo.UserID, todo.Title, todo.Completed, todo.Category,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) GetOwned(ctx context.Context, id, userID int64) (*entities.Todo, error) {
	query := `
		SELECT id, user_id, title, completed, category, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	var todo entities.Todo
	err := r.db.GetContext(ctx, &todo, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			// A todo owned by another user is indistinguishable from a
			// missing one; existence must not leak across devices.
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}

	return &todo, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := `
		UPDATE todos
		SET title = $3, completed = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Completed,
	).Scan(&todo.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTodoNotFound
		}
		return fmt.Errorf("update todo: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTodoNotFound
	}

	return nil
}

func (r *TodoRepositoryImpl) List(ctx context.Context, userID int64, filter ports.TodoFilter) ([]*entities.Todo, error) {
	query := `
		SELECT id, user_id, title, completed, category, created_at, updated_at
		FROM todos
		WHERE user_id = $1`

	args := []interface{}{userID}
	if filter.Category != nil {
		query += ` AND category = $2`
		args = append(args, *filter.Category)
	}
	query += ` ORDER BY created_at DESC`

	todos := []*entities.Todo{}
	err := r.db.SelectContext(ctx, &todos, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) Count(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM todos WHERE user_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}

	return count, nil
}
