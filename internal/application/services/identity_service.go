package services

import (
	"context"
	"fmt"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// DefaultUserName is the display name assigned to lazily created users.
const DefaultUserName = "Device User"

// IdentityService maps opaque device identifiers to user records
type IdentityService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(userRepo ports.UserRepository, logger *logger.Logger) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// DeviceEmail returns the synthesized address for a device identifier.
func DeviceEmail(deviceID string) string {
	return fmt.Sprintf("device_%s@todo.app", deviceID)
}

// Resolve returns the user for a device identifier, creating one on first
// sight. Existing users are returned unchanged; no field is ever updated
// by this path.
func (s *IdentityService) Resolve(ctx context.Context, deviceID string) (*entities.User, error) {
	if deviceID == "" {
		return nil, entities.ErrMissingDeviceID
	}

	user, err := s.userRepo.Upsert(ctx, DeviceEmail(deviceID), DefaultUserName)
	if err != nil {
		return nil, fmt.Errorf("resolve device identity: %w", err)
	}

	return user, nil
}
