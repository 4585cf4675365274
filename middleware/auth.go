package middleware

import (
	"strings"

	"github.com/biosecret/go-todos/auth"
	"github.com/gofiber/fiber/v2"
)

// ClaimsKey là key trong c.Locals chứa *auth.Claims của request
const ClaimsKey = "claims"

// TokenVerifier xác thực bearer token
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireToken xác thực access token trong header Authorization
func RequireToken(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}

		// Tách từ "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token format"})
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom trả về claims mà RequireToken đã lưu, nếu có
func ClaimsFrom(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
	return claims, ok
}
