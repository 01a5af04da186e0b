package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrMissingDeviceID = errors.New("device id is required")
)

// Category classifies a todo. It is a fixed set of tags used only for
// filtering and has no behavioral effect.
type Category string

const (
	CategoryPension Category = "PENSION"
	CategoryCart    Category = "CART"
	CategoryProgram Category = "PROGRAM"
	CategoryEtc     Category = "ETC"
)

// CategoryAll is the list-filter sentinel meaning "no filter".
const CategoryAll = "ALL"

// DefaultCategory is applied when a create request omits the category.
const DefaultCategory = CategoryEtc

// Categories returns all valid category tags.
func Categories() []Category {
	return []Category{CategoryPension, CategoryCart, CategoryProgram, CategoryEtc}
}

// IsValid reports whether c is one of the known tags.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPension, CategoryCart, CategoryProgram, CategoryEtc:
		return true
	}
	return false
}

// User anchors the identity of a device. Users are created lazily on the
// first request carrying a given device identifier and are never mutated
// or deleted afterwards.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Todo is a single task owned by exactly one user.
type Todo struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	Category  Category  `json:"category" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
