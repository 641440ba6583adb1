package handlers

import (
	"errors"
	"fmt"
	"log"

	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/confirmed_email/:token", h.HandleConfirmEmail)
	authRoutes.Post("/request_email", h.HandleRequestEmail)

	authRoutes.Get("/public", h.HandlePublic)
	authRoutes.Get("/moderator",
		middleware.AuthRequired(h.authService),
		middleware.RequireRoles(models.RoleModerator, models.RoleAdmin),
		h.HandleModerator)
	authRoutes.Get("/admin",
		middleware.AuthRequired(h.authService),
		middleware.RequireRoles(models.RoleAdmin),
		h.HandleAdmin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.StructPartial(user, "Username", "Email", "Password"); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.RegisterUser(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		if errors.Is(err, services.ErrEmailRegistered) || errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully. Check your email for a confirmation link.",
		"user":    user.Sanitized(),
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	token, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// HandleConfirmEmail confirms the email address encoded in the token.
// Confirming an already confirmed address is a success, not an error.
func (h *AuthHandler) HandleConfirmEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	already, err := h.authService.ConfirmEmail(token)
	if err != nil {
		log.Printf("Error confirming email: %v", err)
		if errors.Is(err, services.ErrInvalidToken) || errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Verification error",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not confirm email",
			"error":   err.Error(),
		})
	}

	if already {
		return c.JSON(fiber.Map{
			"message": "Your email is already confirmed",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Email confirmed",
	})
}

// RequestEmailRequest represents the request body for re-sending the
// confirmation email.
type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestEmail re-sends the confirmation email for an unconfirmed
// account.
func (h *AuthHandler) HandleRequestEmail(c *fiber.Ctx) error {
	var req RequestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request_email body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	already, err := h.authService.RequestEmailConfirmation(req.Email)
	if err != nil {
		log.Printf("Error requesting confirmation email: %v", err)
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User with this email not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not request confirmation email",
			"error":   err.Error(),
		})
	}

	if already {
		return c.JSON(fiber.Map{
			"message": "Your email is already confirmed",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Check your email for a confirmation link",
	})
}

// HandlePublic is an open route, available without authentication.
func (h *AuthHandler) HandlePublic(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "This is a public route, available to everyone",
	})
}

// HandleModerator greets moderators and administrators.
func (h *AuthHandler) HandleModerator(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome, %s! This route is for moderators and administrators", user.Username),
	})
}

// HandleAdmin greets administrators.
func (h *AuthHandler) HandleAdmin(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome, %s! This is an administrative route", user.Username),
	})
}

// validationErrorResponse converts validator errors into a 400 response
// naming each failed field.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
