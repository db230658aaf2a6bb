package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastopp/fastopp/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	database := newTestDB(t)
	userRepo := repository.NewUserRepository(database)
	return NewAuthService(userRepo, "test-secret", time.Hour, false), NewUserService(userRepo)
}

func TestLogin(t *testing.T) {
	auth, users := newAuthFixture(t)

	created, err := users.Create("admin@example.com", "correct horse", true, false)
	require.NoError(t, err)

	user, err := auth.Login("admin@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)

	_, err = auth.Login("admin@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	auth, users := newAuthFixture(t)

	user, err := users.Create("admin@example.com", "correct horse", false, false)
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, users.Update(user))

	_, err = auth.Login("admin@example.com", "correct horse")
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestJWTRoundtrip(t *testing.T) {
	auth, users := newAuthFixture(t)

	user, err := users.Create("admin@example.com", "correct horse", false, false)
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := auth.VerifyJWT(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims["user_id"])
	require.Equal(t, user.Email, claims["email"])
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	auth, users := newAuthFixture(t)

	user, err := users.Create("admin@example.com", "correct horse", false, false)
	require.NoError(t, err)

	token, err := auth.GenerateJWT(user)
	require.NoError(t, err)

	other := NewAuthService(nil, "different-secret", time.Hour, false)
	_, err = other.VerifyJWT(token)
	require.Error(t, err)
}

func TestJWTCookie(t *testing.T) {
	auth, _ := newAuthFixture(t)

	w := httptest.NewRecorder()
	auth.SetJWTCookie(w, "tok", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "session_token", cookies[0].Name)
	require.Equal(t, "tok", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
	require.False(t, cookies[0].Secure)

	w = httptest.NewRecorder()
	auth.ClearJWTCookie(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestCreateUser_PasswordTooShort(t *testing.T) {
	_, users := newAuthFixture(t)

	_, err := users.Create("admin@example.com", "short", false, false)
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestCreateSuperuser_Idempotent(t *testing.T) {
	_, users := newAuthFixture(t)

	user, created, err := users.CreateSuperuser("root@example.com", "correct horse")
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, user.IsSuperuser)
	require.True(t, user.IsStaff)

	again, created, err := users.CreateSuperuser("root@example.com", "different password")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, user.ID, again.ID)
}
