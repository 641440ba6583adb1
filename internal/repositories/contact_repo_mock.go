package repositories

import (
	"fmt"
	"sync"
	"time"

	"kontak/internal/models"

	"github.com/google/uuid"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[string]models.Contact),
	}
}

// GetAll returns the user's contacts, narrowed by the filter.
func (r *MockContactRepository) GetAll(userID string, filter ContactFilter) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		if c.UserID != userID {
			continue
		}
		if filter.FirstName != "" && c.FirstName != filter.FirstName {
			continue
		}
		if filter.LastName != "" && c.LastName != filter.LastName {
			continue
		}
		if filter.Email != "" && c.Email != filter.Email {
			continue
		}
		if filter.PhoneNumber != "" && c.PhoneNumber != filter.PhoneNumber {
			continue
		}
		matched = append(matched, c)
	}

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			return []models.Contact{}, nil
		}
		matched = matched[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetByID returns a contact by its ID, scoped to the owner.
func (r *MockContactRepository) GetByID(id string, userID string) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok || contact.UserID != userID {
		return nil, fmt.Errorf("contact with ID %s not found", id)
	}
	return &contact, nil
}

// Create adds a new contact.
func (r *MockContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Update modifies an existing contact.
func (r *MockContactRepository) Update(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return fmt.Errorf("contact with ID %s not found for update", contact.ID)
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact by its ID, scoped to the owner.
func (r *MockContactRepository) Delete(id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.contacts[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("contact with ID %s not found for deletion", id)
	}
	delete(r.contacts, id)
	return nil
}

// GetUpcomingBirthdays returns the user's contacts whose birthday falls
// within the next `days` days.
func (r *MockContactRepository) GetUpcomingBirthdays(userID string, days int) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := time.Now()
	upcoming := make([]models.Contact, 0)
	for _, c := range r.contacts {
		if c.UserID != userID {
			continue
		}
		if birthdayInWindow(c.Birthday, today, days) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}
