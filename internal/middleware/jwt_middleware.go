package middleware

import (
	"log"
	"strings"

	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// userLocalsKey is where AuthRequired stores the resolved user.
const userLocalsKey = "current_user"

// AuthRequired is a Fiber middleware that resolves the bearer token to a
// full user record. Any failure along the way (missing header, bad token,
// unknown subject) ends the request with 401.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.ResolveUser(c.Context(), parts[1])
		if err != nil {
			log.Printf("Bearer token resolution failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireRoles is a Fiber middleware asserting the resolved user's role is
// one of the allowed roles. The sets are flat: admin access to a
// moderator-only route must be listed explicitly. Must run after
// AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions",
		})
	}
}

// UserFromContext returns the user resolved by AuthRequired, or nil.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}
