package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
)

func TestDeviceEmail(t *testing.T) {
	assert.Equal(t, "device_abc-123@todo.app", DeviceEmail("abc-123"))
}

func TestResolve_CreatesUserOnFirstSight(t *testing.T) {
	users := newMemUserRepo()
	svc := NewIdentityService(users, logger.NewNop())

	user, err := svc.Resolve(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "device_abc-123@todo.app", user.Email)
	assert.Equal(t, DefaultUserName, user.Name)
	assert.NotZero(t, user.ID)
}

func TestResolve_ReturnsSameUserUnchanged(t *testing.T) {
	users := newMemUserRepo()
	svc := NewIdentityService(users, logger.NewNop())
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "abc-123")
	require.NoError(t, err)

	second, err := svc.Resolve(ctx, "abc-123")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestResolve_DistinctDevicesGetDistinctUsers(t *testing.T) {
	users := newMemUserRepo()
	svc := NewIdentityService(users, logger.NewNop())
	ctx := context.Background()

	a, err := svc.Resolve(ctx, "device-a")
	require.NoError(t, err)
	b, err := svc.Resolve(ctx, "device-b")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolve_RejectsEmptyDeviceID(t *testing.T) {
	users := newMemUserRepo()
	svc := NewIdentityService(users, logger.NewNop())

	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, entities.ErrMissingDeviceID)
}
