package services

import (
	"context"
	"testing"

	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPassword(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(setupTestDB(t), bcrypt.MinCost)

	user, err := service.Register(ctx, models.User{
		Name:     "Farha",
		Email:    "farha@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.Password)
	assert.Equal(t, "USER", user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(setupTestDB(t), bcrypt.MinCost)

	_, err := service.Register(ctx, models.User{Name: "Gul", Email: "gul@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = service.Register(ctx, models.User{Name: "Gul Again", Email: "gul@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(setupTestDB(t), bcrypt.MinCost)

	registered, err := service.Register(ctx, models.User{Name: "Hena", Email: "hena@example.com", Password: "secret"})
	require.NoError(t, err)

	user, err := service.Authenticate(ctx, "hena@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = service.Authenticate(ctx, "hena@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = service.Authenticate(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
