package usecases

import (
	"errors"
	"feedback-server/entities"
	"feedback-server/repositories"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length at
// registration time.
const MinPasswordLength = 8

// dummyHash is a bcrypt hash of a throwaway value. Authenticate compares
// against it when the username does not exist so a lookup miss costs the
// same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserUseCase struct {
	UserRepo     repositories.UserRepository
	FeedbackRepo repositories.FeedbackRepository
}

func NewUserUseCase(userRepo repositories.UserRepository, feedbackRepo repositories.FeedbackRepository) *UserUseCase {
	return &UserUseCase{
		UserRepo:     userRepo,
		FeedbackRepo: feedbackRepo,
	}
}

// Register validates the registration fields, hashes the password and
// stores the new user. The plaintext password is never persisted.
func (uc *UserUseCase) Register(username, password, email, firstName, lastName string) (*entities.User, error) {
	if username == "" {
		return nil, newFieldError("username", "username is required")
	}
	if password == "" {
		return nil, newFieldError("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return nil, newFieldError("password", "password must be at least 8 characters")
	}
	if email == "" {
		return nil, newFieldError("email", "email is required")
	}
	if firstName == "" {
		return nil, newFieldError("first_name", "first name is required")
	}
	if lastName == "" {
		return nil, newFieldError("last_name", "last name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := uc.UserRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials.
func (uc *UserUseCase) Authenticate(username, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Burn the same bcrypt work as the found path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get retrieves a user profile by username.
func (uc *UserUseCase) Get(username string) (*entities.User, error) {
	if username == "" {
		return nil, newFieldError("username", "username is required")
	}
	return uc.UserRepo.GetByUsername(username)
}

// Delete removes the user together with all their feedback entries.
// Both deletions run in one transaction at the repository level.
func (uc *UserUseCase) Delete(username string) error {
	if _, err := uc.UserRepo.GetByUsername(username); err != nil {
		return err
	}
	return uc.UserRepo.DeleteWithFeedback(username)
}
