package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kmaina/stockroom-api/pkg/apperror"
	"github.com/kmaina/stockroom-api/pkg/oauth"
	"github.com/kmaina/stockroom-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo(newFakeRoleRepo())
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{})
	return NewAuthService(userRepo, jwtManager, googleOAuth), userRepo
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "local", user.Provider)
	assert.Empty(t, user.Roles)
	assert.NotEqual(t, "super-secret-1", user.Password)

	output, err := svc.Login(ctx, &LoginInput{
		Email:    "jane@example.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.GetAppError(err).Code)

	// Unknown email yields the same error, not a not-found
	_, err = svc.Login(ctx, &LoginInput{
		Email:    "nobody@example.com",
		Password: "super-secret-1",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.GetAppError(err).Code)
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "jane@example.com",
		Password:  "super-secret-2",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestAuthRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)

	output, err := svc.Login(ctx, &LoginInput{
		Email:    "jane@example.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, output.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	require.Error(t, err)
}

func TestAuthGoogleAuthURL_NotConfigured(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.GetGoogleAuthURL("state")
	assert.ErrorIs(t, err, oauth.ErrOAuthNotConfigured)
}

func TestAuthChangePassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Jane",
		LastName:  "Wanjiru",
		Email:     "jane@example.com",
		Password:  "super-secret-1",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong-password",
		NewPassword:     "super-secret-2",
	})
	require.Error(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "super-secret-1",
		NewPassword:     "super-secret-2",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{
		Email:    "jane@example.com",
		Password: "super-secret-2",
	})
	require.NoError(t, err)
}
