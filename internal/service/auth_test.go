package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/service"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := service.NewAuthService(f.users)

	user, err := svc.Signup(ctx, domain.User{Name: "Maria", Email: " Maria@Test.com ", Password: "Secret@123"})
	require.NoError(t, err)
	assert.Equal(t, "maria@test.com", user.Email)
	assert.Equal(t, domain.RoleParticipant, user.Role)
	assert.NotEqual(t, "Secret@123", user.Password)

	_, err = svc.Signup(ctx, domain.User{Name: "Maria 2", Email: "maria@test.com", Password: "Secret@123"})
	assert.ErrorIs(t, err, service.ErrUserEmailExists)

	_, err = svc.Signup(ctx, domain.User{Name: "Root", Email: "root@test.com", Password: "Secret@123", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, service.ErrInvalidRole)

	organizer, err := svc.Signup(ctx, domain.User{Name: "João", Email: "joao@test.com", Password: "Secret@123", Role: domain.RoleOrganizer})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganizer, organizer.Role)

	logged, err := svc.Login(ctx, "MARIA@test.com", "Secret@123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, "maria@test.com", "wrong")
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@test.com", "Secret@123")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
