package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session binds a client token to an authenticated username. Rows past
// ExpiresAt are treated as gone even before the sweeper removes them.
type Session struct {
	Token     string    `gorm:"type:text;primaryKey" json:"token"`
	Username  string    `gorm:"index;not null" json:"username"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt string    `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Token == "" {
		s.Token = uuid.New().String()
	}
	s.CreatedAt = time.Now().Format(time.RFC3339)
	return
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
