package models

import (
	"time"

	"gorm.io/gorm"
)

// Contact represents a single address-book entry owned by a user.
type Contact struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName   string    `json:"first_name" gorm:"type:varchar(50)" validate:"required,max=50"`
	LastName    string    `json:"last_name" gorm:"type:varchar(50)" validate:"required,max=50"`
	Email       string    `json:"email" gorm:"type:varchar(120)" validate:"required,email"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(15)" validate:"required,max=15"`
	Birthday    time.Time `json:"birthday"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36)"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
