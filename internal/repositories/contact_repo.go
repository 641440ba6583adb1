package repositories

import (
	"time"

	"kontak/internal/models"
)

// ContactFilter narrows a contact listing. Zero-valued fields are ignored.
type ContactFilter struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Skip        int
	Limit       int
}

// ContactRepository defines the interface for contact data access.
// Every operation is scoped to the owning user.
type ContactRepository interface {
	GetAll(userID string, filter ContactFilter) ([]models.Contact, error)
	GetByID(id string, userID string) (*models.Contact, error)
	Create(contact *models.Contact) error
	Update(contact *models.Contact) error
	Delete(id string, userID string) error
	GetUpcomingBirthdays(userID string, days int) ([]models.Contact, error)
}

// birthdayInWindow reports whether the month/day of birthday falls within
// [from, from+days]. The comparison ignores the birth year and handles
// windows that wrap past the end of the year.
func birthdayInWindow(birthday time.Time, from time.Time, days int) bool {
	if birthday.IsZero() {
		return false
	}
	for i := 0; i <= days; i++ {
		d := from.AddDate(0, 0, i)
		if birthday.Month() == d.Month() && birthday.Day() == d.Day() {
			return true
		}
	}
	return false
}
