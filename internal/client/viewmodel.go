package client

import (
	"context"
	"strings"
	"time"

	"github.com/todoapp/core/internal/domain/entities"
)

// ViewModel holds the client-side state for the todo list. Every mutating
// action is tried against the server first and falls back to an
// equivalent mutation of the local mirror on failure. The mirror is never
// reconciled with the server; the next successful call simply resumes
// overwriting server state.
type ViewModel struct {
	api      API
	mirror   *Mirror
	deviceID string

	todos     []entities.Todo
	filter    string // CategoryAll or a tag
	input     string
	selected  entities.Category
	loading   bool
	localMode bool
	notice    string
}

// NoticeDegraded is surfaced when a list fetch fails and the mirror takes
// over.
const NoticeDegraded = "Server unreachable; showing locally saved todos."

// NewViewModel creates a view-model bound to an API and a mirror.
func NewViewModel(api API, mirror *Mirror, deviceID string) *ViewModel {
	return &ViewModel{
		api:      api,
		mirror:   mirror,
		deviceID: deviceID,
		todos:    []entities.Todo{},
		filter:   entities.CategoryAll,
		selected: entities.DefaultCategory,
		loading:  true,
	}
}

// Load fetches the todo list from the server, falling back to the local
// mirror when the fetch fails.
func (vm *ViewModel) Load(ctx context.Context) {
	defer func() { vm.loading = false }()

	todos, err := vm.api.ListTodos(ctx, vm.deviceID, "")
	if err != nil {
		mirrored, mErr := vm.mirror.Load(vm.deviceID)
		if mErr == nil {
			vm.todos = mirrored
		}
		vm.localMode = true
		vm.notice = NoticeDegraded
		return
	}

	vm.todos = todos
	vm.localMode = false
	vm.notice = ""
}

// Add creates a todo from the input buffer. On server failure a record
// with a time-derived id is synthesized and persisted to the mirror.
func (vm *ViewModel) Add(ctx context.Context) {
	title := strings.TrimSpace(vm.input)
	if title == "" {
		return
	}

	todo, err := vm.api.CreateTodo(ctx, vm.deviceID, title, vm.selected)
	if err != nil {
		now := time.Now()
		local := entities.Todo{
			ID:        now.UnixMilli(),
			Title:     title,
			Completed: false,
			Category:  vm.selected,
			CreatedAt: now,
			UpdatedAt: now,
		}
		vm.todos = append([]entities.Todo{local}, vm.todos...)
		vm.persistMirror()
		vm.input = ""
		vm.localMode = true
		return
	}

	vm.todos = append([]entities.Todo{todo}, vm.todos...)
	vm.input = ""
	vm.localMode = false
}

// Toggle flips the completed flag of a todo, server-first.
func (vm *ViewModel) Toggle(ctx context.Context, id int64) {
	idx := vm.indexOf(id)
	if idx < 0 {
		return
	}

	next := !vm.todos[idx].Completed
	updated, err := vm.api.UpdateTodo(ctx, vm.deviceID, id, nil, &next)
	if err != nil {
		vm.todos[idx].Completed = next
		vm.todos[idx].UpdatedAt = time.Now()
		vm.persistMirror()
		vm.localMode = true
		return
	}

	vm.todos[idx] = updated
	vm.localMode = false
}

// Delete removes a todo, server-first.
func (vm *ViewModel) Delete(ctx context.Context, id int64) {
	err := vm.api.DeleteTodo(ctx, vm.deviceID, id)
	if err != nil {
		vm.removeLocal(id)
		vm.persistMirror()
		vm.localMode = true
		return
	}

	vm.removeLocal(id)
	vm.localMode = false
}

// SetFilter selects the active category tab. Pure local state.
func (vm *ViewModel) SetFilter(filter string) {
	vm.filter = filter
}

// SetInput replaces the input buffer. Pure local state.
func (vm *ViewModel) SetInput(input string) {
	vm.input = input
}

// SetCategory selects the category for the next Add. Pure local state.
func (vm *ViewModel) SetCategory(c entities.Category) {
	vm.selected = c
}

// Visible returns the todos matching the active filter.
func (vm *ViewModel) Visible() []entities.Todo {
	if vm.filter == entities.CategoryAll {
		return vm.todos
	}
	out := []entities.Todo{}
	for _, t := range vm.todos {
		if string(t.Category) == vm.filter {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the total, completed, and per-category counts.
func (vm *ViewModel) Counts() (total, completed int, byCategory map[entities.Category]int) {
	byCategory = make(map[entities.Category]int)
	for _, t := range vm.todos {
		byCategory[t.Category]++
		if t.Completed {
			completed++
		}
	}
	return len(vm.todos), completed, byCategory
}

// Accessors for the UI layer.

func (vm *ViewModel) Todos() []entities.Todo { return vm.todos }

func (vm *ViewModel) Filter() string { return vm.filter }

func (vm *ViewModel) Input() string { return vm.input }

func (vm *ViewModel) Selected() entities.Category { return vm.selected }

func (vm *ViewModel) Loading() bool { return vm.loading }

func (vm *ViewModel) LocalMode() bool { return vm.localMode }

func (vm *ViewModel) Notice() string { return vm.notice }

func (vm *ViewModel) DeviceID() string { return vm.deviceID }

func (vm *ViewModel) indexOf(id int64) int {
	for i := range vm.todos {
		if vm.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (vm *ViewModel) removeLocal(id int64) {
	out := vm.todos[:0]
	for _, t := range vm.todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	vm.todos = out
}

func (vm *ViewModel) persistMirror() {
	// Mirror write failures are non-fatal; the in-memory list stays
	// authoritative for the session.
	_ = vm.mirror.Save(vm.deviceID, vm.todos)
}
