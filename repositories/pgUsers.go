package repositories

import (
	"feedback-server/db"
	"feedback-server/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return translate(r.db.GetDB().Create(user).Error)
}

func (r *userPgRepository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userPgRepository) DeleteWithFeedback(username string) error {
	// Feedback first, then the user, in one transaction so a failure
	// never leaves orphaned feedback rows.
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&entities.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Where("username = ?", username).Delete(&entities.User{}).Error
	})
	return translate(err)
}
