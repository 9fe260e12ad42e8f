package handlers

import (
	"time"

	"shopcart/internal/middleware"
	"shopcart/internal/models"
	"shopcart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	cookieSecure bool
	tokenTTL     time.Duration
	log          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cookieSecure bool, tokenTTL time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validate:     validator.New(),
		cookieSecure: cookieSecure,
		tokenTTL:     tokenTTL,
		log:          log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/check-auth", middleware.AuthRequired(h.authService), h.HandleCheckAuth)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the data returned by a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.RegisterUser(req.UserName, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondOK(c, fiber.StatusCreated, "User Registered Successfully", user)
}

// HandleLogin authenticates a user and issues the session token both as a
// cookie and in the response body.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}

	token, user, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
	})
	return respondOK(c, fiber.StatusOK, "Logged in Successfully", LoginResponse{Token: token, User: user})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookie)
	return respondOK(c, fiber.StatusOK, "Logged out Successfully", nil)
}

// HandleCheckAuth returns the identity of the authenticated caller.
func (h *AuthHandler) HandleCheckAuth(c *fiber.Ctx) error {
	return respondOK(c, fiber.StatusOK, "User is authenticated", middleware.ClaimsFrom(c))
}
