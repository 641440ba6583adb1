package services

import (
	"kontak/internal/models"
	"kontak/internal/repositories"
)

// upcomingBirthdayDays is the lookahead window for birthday reminders.
const upcomingBirthdayDays = 7

// ContactService handles business logic related to contacts. All operations
// are scoped to the owning user; a contact of another user behaves as if it
// does not exist.
type ContactService struct {
	repo repositories.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{
		repo: repo,
	}
}

// GetContacts retrieves the user's contacts, narrowed by the filter.
func (s *ContactService) GetContacts(user *models.User, filter repositories.ContactFilter) ([]models.Contact, error) {
	return s.repo.GetAll(user.ID, filter)
}

// GetContactByID retrieves a single contact by its ID.
func (s *ContactService) GetContactByID(id string, user *models.User) (*models.Contact, error) {
	return s.repo.GetByID(id, user.ID)
}

// CreateContact creates a new contact owned by the user.
func (s *ContactService) CreateContact(contact *models.Contact, user *models.User) error {
	contact.UserID = user.ID
	return s.repo.Create(contact)
}

// UpdateContact updates an existing contact owned by the user.
func (s *ContactService) UpdateContact(contact *models.Contact, user *models.User) error {
	contact.UserID = user.ID
	return s.repo.Update(contact)
}

// DeleteContact deletes a contact by its ID.
func (s *ContactService) DeleteContact(id string, user *models.User) error {
	return s.repo.Delete(id, user.ID)
}

// GetUpcomingBirthdays retrieves contacts with a birthday in the next week.
func (s *ContactService) GetUpcomingBirthdays(user *models.User) ([]models.Contact, error) {
	return s.repo.GetUpcomingBirthdays(user.ID, upcomingBirthdayDays)
}
