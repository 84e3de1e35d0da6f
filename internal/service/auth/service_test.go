package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/user"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt-at-least-32-bytes"
)

type fakeUserRepository struct {
	users map[string]user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]user.User{}}
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-" + newUser.Phone
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) LinkGoogleAccount(ctx context.Context, userID string, googleID string) (user.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	f.users[userID] = u
	return u, nil
}

type storedToken struct {
	userID  string
	revoked bool
}

type fakeJWTRepository struct {
	tokens map[string]*storedToken
}

func newFakeJWTRepository() *fakeJWTRepository {
	return &fakeJWTRepository{tokens: map[string]*storedToken{}}
}

func (f *fakeJWTRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (f *fakeJWTRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return "", false, pgx.ErrNoRows
	}
	return t.userID, t.revoked, nil
}

func (f *fakeJWTRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (f *fakeJWTRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

type authFixture struct {
	users   *fakeUserRepository
	tokens  *fakeJWTRepository
	service auth.AuthService
}

func newAuthFixture() authFixture {
	users := newFakeUserRepository()
	tokens := newFakeJWTRepository()
	return authFixture{
		users:   users,
		tokens:  tokens,
		service: NewAuthService(users, jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false), tokens),
	}
}

func (f authFixture) seedUser(t *testing.T, email string, active bool) user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashedStr := string(hashed)
	u := user.User{
		ID:           "user-" + email,
		Name:         "Sales Rep",
		Email:        email,
		Phone:        "081234567890",
		PasswordHash: &hashedStr,
		IsActive:     active,
	}
	f.users.users[u.ID] = u
	return u
}

var testSession = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "rep@example.com", true)

	// Act
	response, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "password123"}, testSession)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, seeded.ID, f.tokens.tokens[response.RefreshToken].userID)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)

	// Act
	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "wrongpassword"}, testSession)

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	f := newAuthFixture()

	// Act
	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, testSession)

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_Inactive(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", false)

	// Act
	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "password123"}, testSession)

	// Assert
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()
	req := auth.RegisterRequest{
		Name: "New Rep", Email: "new@example.com", Phone: "081299990000",
		Password: "password123", ConfirmPassword: "password123",
	}

	// Act
	response, err := f.service.Register(context.Background(), req, testSession)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	created, err := f.users.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)
	req := auth.RegisterRequest{Name: "Dup", Email: "rep@example.com", Phone: "081299990000", Password: "password123"}

	// Act
	_, err := f.service.Register(context.Background(), req, testSession)

	// Assert
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Register_DuplicatePhone(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)
	req := auth.RegisterRequest{Name: "Dup", Email: "other@example.com", Phone: "081234567890", Password: "password123"}

	// Act
	_, err := f.service.Register(context.Background(), req, testSession)

	// Assert
	assert.ErrorIs(t, err, user.ErrUserPhoneExists)
}

func TestAuthService_LoginWithGoogle_LinksExistingUser(t *testing.T) {
	f := newAuthFixture()
	seeded := f.seedUser(t, "rep@example.com", true)

	// Act
	response, err := f.service.LoginWithGoogle(context.Background(), "rep@example.com", "google-123", testSession)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	linked := f.users.users[seeded.ID]
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-123", *linked.OAuthProviderID)
}

func TestAuthService_LoginWithGoogle_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	// Act
	_, err := f.service.LoginWithGoogle(context.Background(), "stranger@example.com", "google-123", testSession)

	// Assert
	assert.ErrorIs(t, err, auth.ErrGoogleAccountNotRegistered)
	assert.Empty(t, f.users.users)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)
	login, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	// Act
	refreshed, err := f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)
	login, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	// Act
	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: login.AccessToken})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "rep@example.com", true)
	login, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "rep@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	// Act
	require.NoError(t, f.service.Logout(context.Background(), login.RefreshToken))
	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})

	// Assert
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	assert.NoError(t, f.service.Logout(context.Background(), "unknown-token"))
}

func TestAuthService_Me_NotFound(t *testing.T) {
	f := newAuthFixture()

	// Act
	_, err := f.service.Me(context.Background(), "missing")

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
