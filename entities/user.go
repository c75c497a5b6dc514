package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. Username is the primary identifier and is
// never changed after registration.
type User struct {
	Username     string `gorm:"type:text;primaryKey" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.CreatedAt = time.Now().Format(time.RFC3339)
	u.UpdatedAt = u.CreatedAt
	return
}
