package repositories

import (
	"feedback-server/db"
	"feedback-server/entities"
	"time"
)

type feedbackPgRepository struct {
	db db.Database
}

func NewFeedbackPgRepository(database db.Database) FeedbackRepository {
	return &feedbackPgRepository{db: database}
}

func (r *feedbackPgRepository) Create(feedback *entities.Feedback) error {
	return translate(r.db.GetDB().Create(feedback).Error)
}

func (r *feedbackPgRepository) GetByID(id uint) (*entities.Feedback, error) {
	var feedback entities.Feedback
	err := r.db.GetDB().Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, translate(err)
	}
	return &feedback, nil
}

func (r *feedbackPgRepository) GetByOwner(username string) ([]entities.Feedback, error) {
	var feedback []entities.Feedback
	err := r.db.GetDB().Where("username = ?", username).Order("id DESC").Find(&feedback).Error
	return feedback, translate(err)
}

func (r *feedbackPgRepository) Update(feedback *entities.Feedback) error {
	feedback.UpdatedAt = time.Now().Format(time.RFC3339)
	return translate(r.db.GetDB().Save(feedback).Error)
}

func (r *feedbackPgRepository) Delete(id uint) error {
	return translate(r.db.GetDB().Where("id = ?", id).Delete(&entities.Feedback{}).Error)
}

func (r *feedbackPgRepository) DeleteByOwner(username string) error {
	return translate(r.db.GetDB().Where("username = ?", username).Delete(&entities.Feedback{}).Error)
}
