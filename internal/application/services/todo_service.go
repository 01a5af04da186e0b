package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// TodoService handles todo operations scoped to a device identity
type TodoService struct {
	todoRepo ports.TodoRepository
	identity *IdentityService
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, identity *IdentityService, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		identity: identity,
		logger:   logger,
	}
}

// ListTodos returns the device's todos ordered by creation time, most
// recent first. categoryParam may be empty, the ALL sentinel, or a tag.
func (s *TodoService) ListTodos(ctx context.Context, deviceID, categoryParam string) ([]*entities.Todo, error) {
	filter := ports.TodoFilter{}
	if categoryParam != "" && categoryParam != entities.CategoryAll {
		category := entities.Category(categoryParam)
		if !category.IsValid() {
			return nil, entities.ErrInvalidCategory
		}
		filter.Category = &category
	}

	user, err := s.identity.Resolve(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	todos, err := s.todoRepo.List(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// CreateTodo inserts a new todo owned by the device's user.
func (s *TodoService) CreateTodo(ctx context.Context, deviceID string, req ports.CreateTodoRequest) (*entities.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entities.ErrEmptyTitle
	}

	category := entities.DefaultCategory
	if req.Category != nil {
		category = entities.Category(*req.Category)
		if !category.IsValid() {
			return nil, entities.ErrInvalidCategory
		}
	}

	user, err := s.identity.Resolve(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	todo := &entities.Todo{
		UserID:   user.ID,
		Title:    title,
		Category: category,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.logger.Info("Todo created", "todo_id", todo.ID, "user_id", user.ID, "category", category)

	return todo, nil
}

// UpdateTodo applies a partial update to a todo owned by the device's
// user. Only supplied fields change; the update timestamp refreshes.
func (s *TodoService) UpdateTodo(ctx context.Context, deviceID string, id int64, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	user, err := s.identity.Resolve(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.GetOwned(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo owned by the device's user.
func (s *TodoService) DeleteTodo(ctx context.Context, deviceID string, id int64) error {
	user, err := s.identity.Resolve(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := s.todoRepo.Delete(ctx, id, user.ID); err != nil {
		return err
	}

	s.logger.Info("Todo deleted", "todo_id", id, "user_id", user.ID)

	return nil
}
