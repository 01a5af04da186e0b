package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// In-memory repositories standing in for the Postgres implementations.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byMail: make(map[string]*entities.User)}
}

func (r *memUserRepo) Upsert(ctx context.Context, email, name string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byMail[email]; ok {
		cp := *u
		return &cp, nil
	}
	r.nextID++
	u := &entities.User{ID: r.nextID, Email: email, Name: name, CreatedAt: time.Now()}
	r.byMail[email] = u
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byMail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, entities.ErrUserNotFound
}

type memTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entities.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{byID: make(map[int64]*entities.Todo)}
}

func (r *memTodoRepo) Create(ctx context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	todo.ID = r.nextID
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	cp := *todo
	r.byID[todo.ID] = &cp
	return nil
}

func (r *memTodoRepo) GetOwned(ctx context.Context, id, userID int64) (*entities.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return nil, entities.ErrTodoNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTodoRepo) Update(ctx context.Context, todo *entities.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[todo.ID]
	if !ok || t.UserID != todo.UserID {
		return entities.ErrTodoNotFound
	}
	t.Title = todo.Title
	t.Completed = todo.Completed
	t.UpdatedAt = time.Now()
	todo.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *memTodoRepo) Delete(ctx context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return entities.ErrTodoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memTodoRepo) List(ctx context.Context, userID int64, filter ports.TodoFilter) ([]*entities.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.Todo{}
	for _, t := range r.byID {
		if t.UserID != userID {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	// created_at DESC; IDs break ties the way bigserial insertion order does
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTodoRepo) Count(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.byID {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func newTestService() (*TodoService, *memUserRepo, *memTodoRepo) {
	users := newMemUserRepo()
	todos := newMemTodoRepo()
	log := logger.NewNop()
	identity := NewIdentityService(users, log)
	return NewTodoService(todos, identity, log), users, todos
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTodo_TrimsTitleAndDefaultsCategory(t *testing.T) {
	svc, _, _ := newTestService()

	todo, err := svc.CreateTodo(context.Background(), "dev-1", ports.CreateTodoRequest{Title: "  buy milk  "})
	require.NoError(t, err)

	assert.Equal(t, "buy milk", todo.Title)
	assert.Equal(t, entities.CategoryEtc, todo.Category)
	assert.False(t, todo.Completed)
	assert.NotZero(t, todo.ID)
	assert.False(t, todo.CreatedAt.IsZero())
	assert.False(t, todo.UpdatedAt.IsZero())
}

func TestCreateTodo_RejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateTodo(context.Background(), "dev-1", ports.CreateTodoRequest{Title: "   "})
	assert.ErrorIs(t, err, entities.ErrEmptyTitle)
}

func TestCreateTodo_RejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateTodo(context.Background(), "dev-1", ports.CreateTodoRequest{
		Title:    "task",
		Category: strPtr("GROCERIES"),
	})
	assert.ErrorIs(t, err, entities.ErrInvalidCategory)
}

func TestCreateTodo_KeepsMultilineTitle(t *testing.T) {
	svc, _, _ := newTestService()

	todo, err := svc.CreateTodo(context.Background(), "dev-1", ports.CreateTodoRequest{Title: "line one\nline two"})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", todo.Title)
}

func TestListTodos_NewDeviceGetsEmptyListAndUserRecord(t *testing.T) {
	svc, users, _ := newTestService()

	todos, err := svc.ListTodos(context.Background(), "fresh-device", "")
	require.NoError(t, err)
	assert.Empty(t, todos)

	u, err := users.GetByEmail(context.Background(), DeviceEmail("fresh-device"))
	require.NoError(t, err)
	assert.Equal(t, DefaultUserName, u.Name)
}

func TestListTodos_RejectsUnknownFilter(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListTodos(context.Background(), "dev-1", "WHATEVER")
	assert.ErrorIs(t, err, entities.ErrInvalidCategory)
}

func TestListTodos_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.CreateTodo(ctx, "dev-1", ports.CreateTodoRequest{Title: title})
		require.NoError(t, err)
	}

	todos, err := svc.ListTodos(ctx, "dev-1", "")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "third", todos[0].Title)
	assert.Equal(t, "first", todos[2].Title)
}

func TestListTodos_CategoryFilter(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, "dev-1", ports.CreateTodoRequest{Title: "groceries", Category: strPtr("CART")})
	require.NoError(t, err)
	_, err = svc.CreateTodo(ctx, "dev-1", ports.CreateTodoRequest{Title: "refactor", Category: strPtr("PROGRAM")})
	require.NoError(t, err)

	carts, err := svc.ListTodos(ctx, "dev-1", "CART")
	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, "groceries", carts[0].Title)

	all, err := svc.ListTodos(ctx, "dev-1", entities.CategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Omitted filter behaves like ALL
	omitted, err := svc.ListTodos(ctx, "dev-1", "")
	require.NoError(t, err)
	assert.Len(t, omitted, 2)
}

func TestUpdateTodo_PartialUpdate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "dev-1", ports.CreateTodoRequest{Title: "original"})
	require.NoError(t, err)

	// Only completed supplied: title stays
	updated, err := svc.UpdateTodo(ctx, "dev-1", created.ID, ports.UpdateTodoRequest{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Title)
	assert.True(t, updated.Completed)

	// Only title supplied: completed stays
	updated, err = svc.UpdateTodo(ctx, "dev-1", created.ID, ports.UpdateTodoRequest{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Completed)
}

func TestUpdateTodo_OwnershipDoesNotLeakExistence(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "device-a", ports.CreateTodoRequest{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, "device-b", created.ID, ports.UpdateTodoRequest{Completed: boolPtr(true)})
	assert.ErrorIs(t, err, entities.ErrTodoNotFound)

	err = svc.DeleteTodo(ctx, "device-b", created.ID)
	assert.ErrorIs(t, err, entities.ErrTodoNotFound)

	// The owner still sees it untouched
	todos, err := svc.ListTodos(ctx, "device-a", "")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Completed)
}

func TestDeleteTodo_SecondDeleteReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "dev-1", ports.CreateTodoRequest{Title: "transient"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, "dev-1", created.ID))
	assert.ErrorIs(t, svc.DeleteTodo(ctx, "dev-1", created.ID), entities.ErrTodoNotFound)
}
