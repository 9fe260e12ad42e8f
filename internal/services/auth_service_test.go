package services_test

import (
	"fmt"
	"testing"
	"time"

	"shopcart/internal/models"
	"shopcart/internal/repositories"
	"shopcart/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, nil)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Test successful registration
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFoundErr("test@example.com")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.DefaultRole &&
			u.UserName == "testuser" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.RegisterUser("testuser", "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser("other", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "Account with this email exists")
	mockRepo.AssertExpectations(t)

	// Test lost race on the unique index
	mockRepo.On("GetByEmail", "race@example.com").Return(nil, notFoundErr("race@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()
	_, err = authService.RegisterUser("racer", "race@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Test store failure
	mockRepo.On("GetByEmail", "down@example.com").Return(nil, fmt.Errorf("connection reset")).Once()
	_, err = authService.RegisterUser("down", "down@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInternal)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:       "user-123",
		UserName: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     "user",
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser("test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.UserName, claims["userName"])
	assert.Equal(t, "user", claims["role"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.LoginUser("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Incorrect Password")
	mockRepo.AssertExpectations(t)

	// Test user not found
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("nobody@example.com")).Once()
	_, _, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Contains(t, err.Error(), "User not found")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	validTokenString, err := authService.IssueToken(services.Claims{ID: "user-123", Role: "admin", Email: "a@b.c", UserName: "testuser"})
	require.NoError(t, err)

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	require.NoError(t, err)
	assert.Equal(t, &services.Claims{ID: "user-123", Role: "admin", Email: "a@b.c", UserName: "testuser"}, claims)

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// Test wrong secret
	other := services.NewAuthService(new(MockUserRepository), "another_secret", time.Hour, nil)
	foreign, err := other.IssueToken(services.Claims{ID: "user-123"})
	require.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token without subject
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": jwt.TimeFunc().Add(time.Hour).Unix()})
	anonymousString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(anonymousString)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestAuthService_PasswordHelpers(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))
	hash, err := authService.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, authService.VerifyPassword("s3cret!", hash))
	assert.False(t, authService.VerifyPassword("guess", hash))
}
