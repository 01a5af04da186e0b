package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid(), "%s should be valid", c)
	}

	assert.False(t, Category("").IsValid())
	assert.False(t, Category("ALL").IsValid(), "the filter sentinel is not a storable category")
	assert.False(t, Category("pension").IsValid(), "tags are case-sensitive")
}

func TestTodoJSONShape(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	todo := Todo{
		ID:        1,
		UserID:    42,
		Title:     "buy milk",
		Category:  CategoryCart,
		CreatedAt: created,
		UpdatedAt: created,
	}

	b, err := json.Marshal(todo)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	assert.Equal(t, "buy milk", m["title"])
	assert.Equal(t, "CART", m["category"])
	assert.Equal(t, false, m["completed"])
	assert.Equal(t, "2025-03-14T09:26:53Z", m["createdAt"])
	assert.NotContains(t, m, "user_id", "owning user must not appear on the wire")
}
