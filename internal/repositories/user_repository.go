package repositories

import "kontak/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	ConfirmEmail(email string) error
	UpdateAvatar(id string, url string) error
}
