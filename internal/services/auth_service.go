package services

import (
	"errors"
	"fmt"
	"time"

	"shopcart/internal/models"
	"shopcart/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for new password hashes.
const bcryptCost = 12

// Claims is the identity carried by a session token.
type Claims struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	log        *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		log:        log,
	}
}

// HashPassword returns the bcrypt hash of plain.
func (s *AuthService) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches hash.
func (s *AuthService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RegisterUser creates a new account with the default role.
func (s *AuthService) RegisterUser(userName, email, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, conflict("Account with this email exists. Please try log in.", nil)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, internal("Some Error occured while regestering", err)
	}

	hashed, err := s.HashPassword(password)
	if err != nil {
		return nil, internal("Some Error occured while regestering", err)
	}

	user := &models.User{
		UserName: userName,
		Email:    email,
		Password: hashed,
		Role:     models.DefaultRole,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, conflict("Account with this email exists. Please try log in.", nil)
		}
		return nil, internal("Some Error occured while regestering", err)
	}
	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// LoginUser authenticates a user and returns a signed token.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, unauthorized("User not found. Create an account to continue or Check your email once.")
		}
		return "", nil, internal("Some Error occured while logging in", err)
	}

	if !s.VerifyPassword(password, user.Password) {
		return "", nil, unauthorized("Incorrect Password! Please try again.")
	}

	token, err := s.IssueToken(Claims{
		ID:       user.ID,
		Role:     user.Role,
		Email:    user.Email,
		UserName: user.UserName,
	})
	if err != nil {
		return "", nil, internal("Some Error occured while logging in", err)
	}
	return token, user, nil
}

// IssueToken signs claims with HS256 and the configured lifetime.
func (s *AuthService) IssueToken(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"role":     claims.Role,
		"email":    claims.Email,
		"userName": claims.UserName,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, &Error{Kind: ErrUnauthorized, Message: "invalid token", Err: err}
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, unauthorized("invalid token")
	}
	claims := &Claims{
		ID:       cast.ToString(mc["id"]),
		Role:     cast.ToString(mc["role"]),
		Email:    cast.ToString(mc["email"]),
		UserName: cast.ToString(mc["userName"]),
	}
	if claims.ID == "" {
		return nil, unauthorized("invalid token")
	}
	return claims, nil
}
