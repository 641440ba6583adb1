package models

import "gorm.io/gorm"

// Roles a user account can hold. There is no hierarchy between them:
// route guards enumerate the roles they accept explicitly.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a registered account of the contact book.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=8"`
	Avatar     string `json:"avatar" gorm:"type:varchar(255)"`
	Confirmed  bool   `json:"confirmed" gorm:"default:false"`
	Role       string `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user moderator admin"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Sanitized returns a copy safe to send to clients: the password hash is
// blanked so the omitempty json tag drops it from the response.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
