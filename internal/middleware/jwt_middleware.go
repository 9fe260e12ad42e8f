package middleware

import (
	"strings"

	"shopcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the name of the cookie carrying the session token.
const TokenCookie = "token"

// claimsKey is the fiber.Ctx Locals key holding *services.Claims.
const claimsKey = "claims"

// AuthRequired is a Fiber middleware to check for a valid JWT token, read
// from the token cookie or a "Bearer" Authorization header.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(TokenCookie)
		if tokenString == "" {
			if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized Access - No token provided",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized Access - Invalid or expired token",
			})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole rejects requests whose token does not carry role. It must be
// mounted after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != role {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized Access - " + role + " role required",
			})
		}
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired, or nil.
func ClaimsFrom(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}
