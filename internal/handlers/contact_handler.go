package handlers

import (
	"log"
	"strings"

	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/repositories"
	"kontak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for contacts.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact routes with the Fiber app. The given
// router must already be behind authentication middleware.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/", h.HandleGetContacts)
	contactRoutes.Get("/upcoming_birthdays", h.HandleUpcomingBirthdays)
	contactRoutes.Get("/:id", h.HandleGetContactByID)
	contactRoutes.Post("/", h.HandleCreateContact)
	contactRoutes.Patch("/:id", h.HandleUpdateContact)
	contactRoutes.Delete("/:id", h.HandleDeleteContact)
}

// HandleGetContacts retrieves the caller's contacts, optionally narrowed by
// first_name, last_name, email and phone_number query parameters.
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	filter := repositories.ContactFilter{
		FirstName:   c.Query("first_name"),
		LastName:    c.Query("last_name"),
		Email:       c.Query("email"),
		PhoneNumber: c.Query("phone_number"),
		Skip:        c.QueryInt("skip", 0),
		Limit:       c.QueryInt("limit", 100),
	}

	contacts, err := h.service.GetContacts(user, filter)
	if err != nil {
		log.Printf("Error getting contacts for user %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contacts",
			"error":   err.Error(),
		})
	}
	return c.JSON(contacts)
}

// HandleGetContactByID retrieves a single contact by its ID.
func (h *ContactHandler) HandleGetContactByID(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	contactID := c.Params("id")

	contact, err := h.service.GetContactByID(contactID, user)
	if err != nil {
		log.Printf("Error getting contact %s for user %s: %v", contactID, user.Username, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contact",
			"error":   err.Error(),
		})
	}
	return c.JSON(contact)
}

// HandleCreateContact creates a new contact owned by the caller.
func (h *ContactHandler) HandleCreateContact(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var contact models.Contact
	if err := c.BodyParser(&contact); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(contact); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateContact(&contact, user); err != nil {
		log.Printf("Error creating contact for user %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create contact",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// HandleUpdateContact updates an existing contact owned by the caller.
func (h *ContactHandler) HandleUpdateContact(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	contactID := c.Params("id")

	var contact models.Contact
	if err := c.BodyParser(&contact); err != nil {
		log.Printf("Error parsing contact update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	contact.ID = contactID

	if err := h.validate.Struct(contact); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateContact(&contact, user); err != nil {
		log.Printf("Error updating contact %s for user %s: %v", contactID, user.Username, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update contact",
			"error":   err.Error(),
		})
	}

	updated, err := h.service.GetContactByID(contactID, user)
	if err != nil {
		log.Printf("Error reloading contact %s: %v", contactID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not reload updated contact",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleDeleteContact deletes a contact owned by the caller.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	contactID := c.Params("id")

	if err := h.service.DeleteContact(contactID, user); err != nil {
		log.Printf("Error deleting contact %s for user %s: %v", contactID, user.Username, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete contact",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Contact deleted successfully",
	})
}

// HandleUpcomingBirthdays lists contacts with a birthday in the next week.
func (h *ContactHandler) HandleUpcomingBirthdays(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	contacts, err := h.service.GetUpcomingBirthdays(user)
	if err != nil {
		log.Printf("Error getting upcoming birthdays for user %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve upcoming birthdays",
			"error":   err.Error(),
		})
	}
	return c.JSON(contacts)
}
