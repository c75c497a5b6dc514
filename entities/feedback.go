package entities

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is a short note posted by a user. Username references the
// owning User; only the owner may change or remove the entry, and the
// entry goes away together with its owner.
type Feedback struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"not null" json:"content"`
	Username  string `gorm:"index;not null" json:"username"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	f.CreatedAt = time.Now().Format(time.RFC3339)
	f.UpdatedAt = f.CreatedAt
	return
}
