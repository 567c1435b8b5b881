package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/pkg/email"
	jwtPkg "github.com/matjiblog/matjiblog-backend/pkg/jwt"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		email.NewEmailService("", ""),
		jwtPkg.NewManager("test-secret", time.Hour),
		zap.NewNop(),
	)
	return svc, db
}

func TestRegisterNeverSerializesPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(models.RegisterRequest{
		Email:       "A@X.com",
		Password:    "secret1",
		DisplayName: "Jiyoon",
	})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret1")
	assert.NotContains(t, string(raw), "password")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(models.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Same address in different casing is still a duplicate.
	_, err = svc.Register(models.RegisterRequest{Email: "A@X.COM", Password: "other22"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	svc, db := newAuthService(t)

	_, err := svc.Register(models.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.Login(models.LoginRequest{Email: "a@x.com", Password: "wrong"})
		require.Error(t, err)
	}

	resp, err := svc.Login(models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.LoginAttempts)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.User.LastLoginAt)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "a@x.com").Error)
	assert.Equal(t, 0, stored.LoginAttempts)
}

func TestLoginLockoutScenario(t *testing.T) {
	svc, db := newAuthService(t)

	_, err := svc.Register(models.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Four failures count down the remaining attempts.
	for want := 4; want >= 1; want-- {
		_, err := svc.Login(models.LoginRequest{Email: "a@x.com", Password: "nope"})
		var rejected *LoginRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.False(t, rejected.Locked)
		assert.Equal(t, want, rejected.RemainingAttempts)
	}

	// The fifth failure locks the account.
	_, err = svc.Login(models.LoginRequest{Email: "a@x.com", Password: "nope"})
	var rejected *LoginRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.True(t, rejected.Locked)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "a@x.com").Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 5, stored.LoginAttempts)

	// A locked account is indistinguishable from a missing one, even with
	// the correct password.
	_, err = svc.Login(models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(models.LoginRequest{Email: "ghost@x.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var rejected *LoginRejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestMeExcludesInactiveUsers(t *testing.T) {
	svc, db := newAuthService(t)

	user, err := svc.Register(models.RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	got, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.Me(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
