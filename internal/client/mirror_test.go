package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/core/internal/domain/entities"
)

func TestMirror_DeviceIDPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	m1, err := NewMirror(dir)
	require.NoError(t, err)
	first, err := m1.DeviceID()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// A second open of the same state dir sees the same identifier
	m2, err := NewMirror(dir)
	require.NoError(t, err)
	second, err := m2.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMirror_LoadMissingFileIsEmptyList(t *testing.T) {
	m, err := NewMirror(t.TempDir())
	require.NoError(t, err)

	todos, err := m.Load("never-seen")
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestMirror_SaveIsScopedPerDevice(t *testing.T) {
	m, err := NewMirror(t.TempDir())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, m.Save("device-a", []entities.Todo{{
		ID:        1,
		Title:     "a's task",
		Category:  entities.CategoryEtc,
		CreatedAt: now,
		UpdatedAt: now,
	}}))

	a, err := m.Load("device-a")
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, "a's task", a[0].Title)

	b, err := m.Load("device-b")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestMirror_SaveOverwrites(t *testing.T) {
	m, err := NewMirror(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, m.Save("dev", []entities.Todo{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}}))
	require.NoError(t, m.Save("dev", []entities.Todo{{ID: 2, Title: "two"}}))

	todos, err := m.Load("dev")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, int64(2), todos[0].ID)
}
