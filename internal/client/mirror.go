package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/todoapp/core/internal/domain/entities"
)

// JSON-backed local state. One file for the device identifier, one per
// device for the mirrored todo list. The mirror is only consulted while
// the backend is unreachable and is never reconciled with it.

const deviceIDFileName = "device_id"

// Mirror persists the device identifier and the per-device todo mirror
// under a state directory.
type Mirror struct {
	dir string
}

// NewMirror creates a mirror rooted at dir, creating it if needed. An
// empty dir resolves to <user config dir>/todoapp.
func NewMirror(dir string) (*Mirror, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "todoapp")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Mirror{dir: dir}, nil
}

// DeviceID loads the persisted device identifier, generating and
// persisting a fresh one on first run.
func (m *Mirror) DeviceID() (string, error) {
	p := filepath.Join(m.dir, deviceIDFileName)

	b, err := os.ReadFile(p)
	if err == nil && len(b) > 0 {
		return string(b), nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read device id: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(p, []byte(id), 0o644); err != nil {
		return "", fmt.Errorf("write device id: %w", err)
	}
	return id, nil
}

func (m *Mirror) todosPath(deviceID string) string {
	return filepath.Join(m.dir, fmt.Sprintf("todos_local_%s.json", deviceID))
}

// Load reads the mirrored todo list for a device. A missing file is an
// empty list, not an error.
func (m *Mirror) Load(deviceID string) ([]entities.Todo, error) {
	b, err := os.ReadFile(m.todosPath(deviceID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entities.Todo{}, nil
		}
		return nil, fmt.Errorf("read mirror: %w", err)
	}

	var todos []entities.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, fmt.Errorf("unmarshal mirror: %w", err)
	}
	return todos, nil
}

// Save overwrites the mirrored todo list for a device.
func (m *Mirror) Save(deviceID string, todos []entities.Todo) error {
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mirror: %w", err)
	}
	if err := os.WriteFile(m.todosPath(deviceID), b, 0o644); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	return nil
}
