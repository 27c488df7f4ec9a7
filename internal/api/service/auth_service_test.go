package service

import (
	"context"
	"testing"
	"time"

	"foodgram/internal/api/models"
	"foodgram/internal/api/repository"
	"foodgram/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	mockUserRepo.On("FindByUsername", mock.Anything, "chef").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "chef@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.Register(context.Background(),
		"chef@example.com", "chef", "Julia", "Child", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "chef", user.Username)
	assert.Equal(t, "chef@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_UsernameExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	existing := &models.User{Username: "chef"}
	mockUserRepo.On("FindByUsername", mock.Anything, "chef").Return(existing, nil)

	user, err := authService.Register(context.Background(),
		"chef@example.com", "chef", "Julia", "Child", "password123")

	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	existing := &models.User{Email: "chef@example.com"}
	mockUserRepo.On("FindByUsername", mock.Anything, "chef").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", mock.Anything, "chef@example.com").Return(existing, nil)

	user, err := authService.Register(context.Background(),
		"chef@example.com", "chef", "Julia", "Child", "password123")

	assert.Equal(t, ErrEmailInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       7,
		Username: "chef",
		Email:    "chef@example.com",
		Password: string(hashed),
	}

	mockUserRepo.On("FindByEmail", mock.Anything, "chef@example.com").Return(user, nil)
	mockTokens.On("Save", mock.Anything, mock.AnythingOfType("string"), int64(7), 7*24*time.Hour).Return(nil)

	accessToken, refreshToken, returned, err := authService.Login(context.Background(), "chef@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, user.Username, returned.Username)
	mockUserRepo.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestLogin_InvalidPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Username: "chef", Email: "chef@example.com", Password: string(hashed)}

	mockUserRepo.On("FindByEmail", mock.Anything, "chef@example.com").Return(user, nil)

	accessToken, refreshToken, returned, err := authService.Login(context.Background(), "chef@example.com", "wrong")

	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, returned)
	mockUserRepo.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := authService.Login(context.Background(), "ghost@example.com", "whatever")

	assert.Equal(t, ErrInvalidCredentials, err)
	mockUserRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_RotatesToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	user := &models.User{ID: 7, Username: "chef"}
	mockTokens.On("Lookup", mock.Anything, "old-token").Return(int64(7), nil)
	mockUserRepo.On("FindByID", mock.Anything, int64(7)).Return(user, nil)
	mockTokens.On("Delete", mock.Anything, "old-token").Return(nil)
	mockTokens.On("Save", mock.Anything, mock.AnythingOfType("string"), int64(7), 7*24*time.Hour).Return(nil)

	accessToken, newRefresh, err := authService.RefreshAccessToken(context.Background(), "old-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, newRefresh)
	assert.NotEqual(t, "old-token", newRefresh)
	mockTokens.AssertExpectations(t)
}

func TestRefreshAccessToken_UnknownToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	mockTokens.On("Lookup", mock.Anything, "missing").Return(int64(0), repository.ErrRefreshTokenNotFound)

	_, _, err := authService.RefreshAccessToken(context.Background(), "missing")

	assert.Equal(t, ErrInvalidToken, err)
	mockTokens.AssertExpectations(t)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockTokens := new(MockRefreshTokenStore)
	authService := NewAuthService(mockUserRepo, mockTokens, testAuthConfig())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Username: "chef", Email: "chef@example.com", Password: string(hashed)}

	mockUserRepo.On("FindByEmail", mock.Anything, "chef@example.com").Return(user, nil)
	mockTokens.On("Save", mock.Anything, mock.AnythingOfType("string"), int64(7), mock.Anything).Return(nil)

	accessToken, _, _, err := authService.Login(context.Background(), "chef@example.com", "password123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "chef", claims.Username)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testAuthConfig()
	authService := NewAuthService(new(MockUserRepository), new(MockRefreshTokenStore), cfg)

	other := *cfg
	other.JWTSecret = "other-secret"
	otherService := NewAuthService(new(MockUserRepository), new(MockRefreshTokenStore), &other)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	user := &models.User{ID: 1, Username: "chef", Email: "c@e.com", Password: string(hashed)}

	repo := new(MockUserRepository)
	tokens := new(MockRefreshTokenStore)
	repo.On("FindByEmail", mock.Anything, "c@e.com").Return(user, nil)
	tokens.On("Save", mock.Anything, mock.Anything, int64(1), mock.Anything).Return(nil)
	authService = NewAuthService(repo, tokens, cfg)

	accessToken, _, _, err := authService.Login(context.Background(), "c@e.com", "pw123456")
	assert.NoError(t, err)

	_, err = otherService.ValidateToken(accessToken)
	assert.Error(t, err)
}
