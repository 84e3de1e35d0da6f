//go:build container

package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/user"
	"github.com/fieldops-id/fieldops-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, ctx context.Context, email string, phone string) user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashedStr := string(hashed)

	created, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Name:         "Sales Rep",
		Address:      "Jl. Sudirman 1",
		Email:        email,
		Phone:        phone,
		PasswordHash: &hashedStr,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_Create_Success(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()

	created := createTestUser(t, ctx, "Rep@Example.com", "081234567890")

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "rep@example.com", created.Email)
	assert.True(t, created.HasPassword())
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	createTestUser(t, ctx, "rep@example.com", "081234567890")

	_, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Name: "Other", Email: "REP@example.com", Phone: "081234567891", IsActive: true,
	})

	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_Create_DuplicatePhone(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	createTestUser(t, ctx, "rep@example.com", "081234567890")

	_, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Name: "Other", Email: "other@example.com", Phone: "081234567890", IsActive: true,
	})

	assert.ErrorIs(t, err, user.ErrUserPhoneExists)
}

func TestUserRepository_GetByEmail_CaseInsensitive(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	created := createTestUser(t, ctx, "rep@example.com", "081234567890")

	found, err := postgresql.NewUserRepository(testDB).GetByEmail(ctx, "REP@EXAMPLE.COM")

	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	defer cleanupTestData(t)

	_, err := postgresql.NewUserRepository(testDB).GetByID(context.Background(), "0190a8a4-3c1e-7b2d-9f00-000000000000")

	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_Exists(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewUserRepository(testDB)

	byEmail, err := repo.ExistsByEmail(ctx, "Rep@example.com")
	require.NoError(t, err)
	byPhone, err := repo.ExistsByPhone(ctx, "081234567890")
	require.NoError(t, err)
	missing, err := repo.ExistsByPhone(ctx, "089999999999")
	require.NoError(t, err)

	assert.True(t, byEmail)
	assert.True(t, byPhone)
	assert.False(t, missing)
}

func TestUserRepository_LinkGoogleAccount_Success(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	created := createTestUser(t, ctx, "rep@example.com", "081234567890")

	linked, err := postgresql.NewUserRepository(testDB).LinkGoogleAccount(ctx, created.ID, "google-id-123")

	require.NoError(t, err)
	require.NotNil(t, linked.OAuthProvider)
	assert.Equal(t, "google", *linked.OAuthProvider)
	assert.Equal(t, "google-id-123", *linked.OAuthProviderID)
}

func TestJWTRepository_RefreshTokenLifecycle(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	created := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewJWTRepository(testDB)

	err := repo.CreateRefreshToken(ctx, created.ID, "refresh-token", time.Now().Add(time.Hour).Unix(), auth.SessionTrackingRequest{
		IPAddress: "10.0.0.1",
		UserAgent: "test",
	})
	require.NoError(t, err)

	userID, revoked, err := repo.IsRefreshTokenRevoked(ctx, "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "refresh-token"))

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "refresh-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, _, err = repo.IsRefreshTokenRevoked(ctx, "never-issued")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
