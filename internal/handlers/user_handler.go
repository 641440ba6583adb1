package handlers

import (
	"log"

	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
	userRoutes.Patch("/avatar",
		middleware.AuthRequired(h.authService),
		middleware.RequireRoles(models.RoleAdmin),
		h.HandleUpdateAvatar)
}

// HandleMe returns the authenticated caller's own profile.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	return c.JSON(user.Sanitized())
}

// HandleUpdateAvatar uploads a new avatar image for the caller and returns
// the updated profile.
func (h *UserHandler) HandleUpdateAvatar(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' form field with the avatar image is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded avatar for user %s: %v", user.Username, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	updated, err := h.userService.UpdateAvatar(c.Context(), user, fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error updating avatar for user %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update avatar",
			"error":   err.Error(),
		})
	}

	return c.JSON(updated.Sanitized())
}
