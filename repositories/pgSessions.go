package repositories

import (
	"feedback-server/db"
	"feedback-server/entities"
	"time"
)

type sessionPgRepository struct {
	db db.Database
}

func NewSessionPgRepository(database db.Database) SessionRepository {
	return &sessionPgRepository{db: database}
}

func (r *sessionPgRepository) Create(session *entities.Session) error {
	return translate(r.db.GetDB().Create(session).Error)
}

func (r *sessionPgRepository) GetByToken(token string) (*entities.Session, error) {
	var session entities.Session
	err := r.db.GetDB().Where("token = ?", token).First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionPgRepository) Delete(token string) error {
	return translate(r.db.GetDB().Where("token = ?", token).Delete(&entities.Session{}).Error)
}

func (r *sessionPgRepository) DeleteByUsername(username string) error {
	return translate(r.db.GetDB().Where("username = ?", username).Delete(&entities.Session{}).Error)
}

func (r *sessionPgRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.GetDB().Where("expires_at <= ?", now).Delete(&entities.Session{})
	return result.RowsAffected, translate(result.Error)
}
