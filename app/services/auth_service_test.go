package services

import (
	"context"
	"testing"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.SignUp(ctx, SignUpInput{Name: "  Ravi ", Email: " Ravi@Example.com ", Phone: " 9876543210 ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.Equal(t, "Ravi", user.Name)
	assert.Equal(t, "9876543210", user.Phone)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	_, err = env.auth.SignUp(ctx, SignUpInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := env.auth.SignIn(ctx, "RAVI@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = env.auth.SignIn(ctx, "ravi@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignUpValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		in   SignUpInput
	}{
		{"missing name", SignUpInput{Email: "a@example.com", Password: "secret123"}},
		{"blank name", SignUpInput{Name: "   ", Email: "a@example.com", Password: "secret123"}},
		{"blank email", SignUpInput{Name: "Ab", Email: "   ", Password: "secret123"}},
		{"bad email", SignUpInput{Name: "Ab", Email: "not-an-email", Password: "secret123"}},
		{"short password", SignUpInput{Name: "Ab", Email: "a@example.com", Password: "short"}},
		{"bad phone", SignUpInput{Name: "Ab", Email: "a@example.com", Password: "secret123", Phone: "12ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.SignUp(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.auth.SignUp(ctx, SignUpInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.auth.ChangePassword(ctx, user.ID, "nope-nope", "another123"), ErrInvalidCredentials)
	assert.ErrorIs(t, env.auth.ChangePassword(ctx, user.ID, "secret123", "short"), ErrInvalidInput)
	require.NoError(t, env.auth.ChangePassword(ctx, user.ID, "secret123", "another123"))

	_, err = env.auth.SignIn(ctx, "ravi@example.com", "another123")
	require.NoError(t, err)
}

func TestAuthService_RolesAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.auth.EnsureAdmin(ctx, "Owner", "owner@example.com", "admin-pass-1")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := env.auth.EnsureAdmin(ctx, "Owner", "owner@example.com", "admin-pass-1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	user, err := env.auth.SignUp(ctx, SignUpInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = env.auth.SetRole(ctx, user, admin.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = env.auth.SetRole(ctx, admin, user.ID, "owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = env.auth.SetRole(ctx, admin, admin.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = env.auth.SetRole(ctx, admin, "missing", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)

	promoted, err := env.auth.SetRole(ctx, admin, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	users, err := env.auth.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = env.auth.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = env.auth.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
