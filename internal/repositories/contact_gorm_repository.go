package repositories

import (
	"fmt"
	"time"

	"kontak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// GetAll retrieves the user's contacts, narrowed by the filter.
func (r *GORMContactRepository) GetAll(userID string, filter ContactFilter) ([]models.Contact, error) {
	query := r.db.Where("user_id = ?", userID)
	if filter.FirstName != "" {
		query = query.Where("first_name = ?", filter.FirstName)
	}
	if filter.LastName != "" {
		query = query.Where("last_name = ?", filter.LastName)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	if filter.PhoneNumber != "" {
		query = query.Where("phone_number = ?", filter.PhoneNumber)
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return contacts, nil
}

// GetByID retrieves a single contact by its ID, scoped to the owner.
func (r *GORMContactRepository) GetByID(id string, userID string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("contact with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}

// Create creates a new contact in the database.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update updates an existing contact in the database.
func (r *GORMContactRepository) Update(contact *models.Contact) error {
	res := r.db.Model(&models.Contact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]interface{}{
			"first_name":   contact.FirstName,
			"last_name":    contact.LastName,
			"email":        contact.Email,
			"phone_number": contact.PhoneNumber,
			"birthday":     contact.Birthday,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s not found for update", contact.ID)
	}
	return nil
}

// Delete removes a contact by its ID, scoped to the owner.
func (r *GORMContactRepository) Delete(id string, userID string) error {
	res := r.db.Delete(&models.Contact{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact with ID %s not found for deletion", id)
	}
	return nil
}

// GetUpcomingBirthdays retrieves the user's contacts whose birthday falls
// within the next `days` days. The month/day window arithmetic is done in
// Go; SQL date extraction differs between the postgres and sqlite drivers.
func (r *GORMContactRepository) GetUpcomingBirthdays(userID string, days int) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contacts for birthday lookup: %w", err)
	}

	today := time.Now()
	upcoming := make([]models.Contact, 0)
	for _, c := range contacts {
		if birthdayInWindow(c.Birthday, today, days) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}
