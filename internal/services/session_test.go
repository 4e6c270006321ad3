package services

import (
	"context"
	"sync"
	"testing"

	"github.com/diewo77/agence-immo/gate"
	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/diewo77/agence-immo/internal/config"
	"github.com/diewo77/agence-immo/internal/db"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*SessionService, *gorm.DB) {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{URL: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return NewSessionService(gdb), gdb
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "Admin@Example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)

	var users []models.User
	require.NoError(t, gdb.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, gate.RoleAdmin, users[0].Role)

	_, err = svc.EnsureDefaultAdmin(ctx, " ", "admin123")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	_, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	sess, err := svc.Authenticate(ctx, "  ADMIN@example.com ", "admin123")
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64)
	assert.Equal(t, "admin@example.com", sess.User.Email)
	assert.Equal(t, gate.RoleAdmin, sess.User.Role)

	id, err := svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id.UserID)
	assert.Equal(t, gate.RoleAdmin, id.Role)
	assert.NotZero(t, id.TokenID)
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	_, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "admin@example.com", "nope")
	_, unknownEmail := svc.Authenticate(ctx, "ghost@example.com", "admin123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, apperr.ErrAuthentication)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestSecondLoginInvalidatesFirstToken(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	_, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	first, err := svc.Authenticate(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	second, err := svc.Authenticate(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = svc.Resolve(ctx, first.Token)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
	_, err = svc.Resolve(ctx, second.Token)
	assert.NoError(t, err)

	var n int64
	require.NoError(t, gdb.Model(&models.AuthToken{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestConcurrentLoginsLeaveOneSession(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	_, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	const logins = 6
	tokens := make([]string, logins)
	errs := make([]error, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := svc.Authenticate(ctx, "admin@example.com", "admin123")
			tokens[i], errs[i] = sess.Token, err
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, gdb.Model(&models.AuthToken{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	live := 0
	for _, tok := range tokens {
		if _, err := svc.Resolve(ctx, tok); err == nil {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

func TestRevoke(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	_, err := svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	sess, err := svc.Authenticate(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	id, err := svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, id.TokenID))
	require.NoError(t, svc.Revoke(ctx, id.TokenID))

	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
	_, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}

func TestCreateUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, NewUser{Email: " Zoe@Agence.fr ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "zoe@agence.fr", u.Email)
	assert.Equal(t, gate.RoleAgent, u.Role)

	_, err = svc.CreateUser(ctx, NewUser{Email: "ZOE@agence.fr", Password: "other"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.CreateUser(ctx, NewUser{Email: "bob@agence.fr", Password: "secret", Role: "owner"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateUser(ctx, NewUser{Email: "bob@agence.fr"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateUser(ctx, NewUser{Email: "anna@agence.fr", Password: "secret", Role: gate.RoleAdmin})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "anna@agence.fr", users[0].Email)
	assert.Equal(t, gate.RoleAdmin, users[0].Role)
	assert.Equal(t, "zoe@agence.fr", users[1].Email)
}

func TestDeletingUserDropsSessions(t *testing.T) {
	svc, gdb := setupService(t)
	ctx := context.Background()
	u, err := svc.CreateUser(ctx, NewUser{Email: "agent@agence.fr", Password: "secret"})
	require.NoError(t, err)
	sess, err := svc.Authenticate(ctx, "agent@agence.fr", "secret")
	require.NoError(t, err)

	require.NoError(t, gdb.Delete(&models.User{}, u.ID).Error)

	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
}
