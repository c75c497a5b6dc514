package repositories

import (
	"feedback-server/entities"
	"time"
)

type UserRepository interface {
	Create(user *entities.User) error
	GetByUsername(username string) (*entities.User, error)
	// DeleteWithFeedback removes the user and every feedback entry they
	// own in a single transaction, so a failure leaves both in place.
	DeleteWithFeedback(username string) error
}

type FeedbackRepository interface {
	Create(feedback *entities.Feedback) error
	GetByID(id uint) (*entities.Feedback, error)
	// GetByOwner returns the owner's entries ordered by id descending,
	// most recent first.
	GetByOwner(username string) ([]entities.Feedback, error)
	Update(feedback *entities.Feedback) error
	Delete(id uint) error
	DeleteByOwner(username string) error
}

type SessionRepository interface {
	Create(session *entities.Session) error
	GetByToken(token string) (*entities.Session, error)
	Delete(token string) error
	DeleteByUsername(username string) error
	DeleteExpired(now time.Time) (int64, error)
}
