package usecases

import (
	"sort"
	"testing"
	"time"

	"feedback-server/entities"
	"feedback-server/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- in-memory fakes ---

type memFeedbackRepo struct {
	entries map[uint]entities.Feedback
	nextID  uint
}

func newMemFeedbackRepo() *memFeedbackRepo {
	return &memFeedbackRepo{entries: make(map[uint]entities.Feedback)}
}

func (r *memFeedbackRepo) Create(feedback *entities.Feedback) error {
	r.nextID++
	feedback.ID = r.nextID
	r.entries[feedback.ID] = *feedback
	return nil
}

func (r *memFeedbackRepo) GetByID(id uint) (*entities.Feedback, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &entry, nil
}

func (r *memFeedbackRepo) GetByOwner(username string) ([]entities.Feedback, error) {
	var result []entities.Feedback
	for _, entry := range r.entries {
		if entry.Username == username {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *memFeedbackRepo) Update(feedback *entities.Feedback) error {
	if _, ok := r.entries[feedback.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.entries[feedback.ID] = *feedback
	return nil
}

func (r *memFeedbackRepo) Delete(id uint) error {
	delete(r.entries, id)
	return nil
}

func (r *memFeedbackRepo) DeleteByOwner(username string) error {
	for id, entry := range r.entries {
		if entry.Username == username {
			delete(r.entries, id)
		}
	}
	return nil
}

type memUserRepo struct {
	users    map[string]entities.User
	feedback *memFeedbackRepo
}

func newMemUserRepo(feedback *memFeedbackRepo) *memUserRepo {
	return &memUserRepo{users: make(map[string]entities.User), feedback: feedback}
}

func (r *memUserRepo) Create(user *entities.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repositories.ErrDuplicate
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetByUsername(username string) (*entities.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) DeleteWithFeedback(username string) error {
	if err := r.feedback.DeleteByOwner(username); err != nil {
		return err
	}
	delete(r.users, username)
	return nil
}

type memSessionRepo struct {
	sessions map[string]entities.Session
	getCalls int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]entities.Session)}
}

func (r *memSessionRepo) Create(session *entities.Session) error {
	// mirrors the BeforeCreate hook run by gorm
	if session.Token == "" {
		session.Token = uuid.New().String()
	}
	r.sessions[session.Token] = *session
	return nil
}

func (r *memSessionRepo) GetByToken(token string) (*entities.Session, error) {
	r.getCalls++
	session, ok := r.sessions[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &session, nil
}

func (r *memSessionRepo) Delete(token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteByUsername(username string) error {
	for token, session := range r.sessions {
		if session.Username == username {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteExpired(now time.Time) (int64, error) {
	var removed int64
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func newUserEnv() (*UserUseCase, *memUserRepo, *memFeedbackRepo) {
	feedbackRepo := newMemFeedbackRepo()
	userRepo := newMemUserRepo(feedbackRepo)
	return NewUserUseCase(userRepo, feedbackRepo), userRepo, feedbackRepo
}

// --- tests ---

func TestRegisterShortPassword(t *testing.T) {
	uc, userRepo, _ := newUserEnv()

	_, err := uc.Register("alice", "short", "alice@example.com", "Alice", "Smith")
	require.ErrorIs(t, err, ErrValidation)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "password", fieldErr.Field)
	assert.Empty(t, userRepo.users)
}

func TestRegisterMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		email    string
		first    string
		last     string
		field    string
	}{
		{"no username", "", "password123", "a@example.com", "A", "B", "username"},
		{"no password", "alice", "", "a@example.com", "A", "B", "password"},
		{"no email", "alice", "password123", "", "A", "B", "email"},
		{"no first name", "alice", "password123", "a@example.com", "", "B", "first_name"},
		{"no last name", "alice", "password123", "a@example.com", "A", "", "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, userRepo, _ := newUserEnv()
			_, err := uc.Register(tt.username, tt.password, tt.email, tt.first, tt.last)
			require.ErrorIs(t, err, ErrValidation)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Empty(t, userRepo.users)
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	uc, userRepo, _ := newUserEnv()

	user, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	stored := userRepo.users["alice"]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, userRepo, _ := newUserEnv()

	_, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	_, err = uc.Register("alice", "password123", "other@example.com", "Other", "Person")
	require.ErrorIs(t, err, ErrDuplicateUser)
	assert.Len(t, userRepo.users, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newUserEnv()

	_, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	_, err = uc.Register("bob", "password123", "alice@example.com", "Bob", "Jones")
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestAuthenticate(t *testing.T) {
	uc, _, _ := newUserEnv()

	_, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	user, err := uc.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	uc, _, _ := newUserEnv()

	_, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	_, wrongPassErr := uc.Authenticate("alice", "wrong-password")
	_, unknownUserErr := uc.Authenticate("nobody", "whatever")

	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
}

func TestDeleteCascadesFeedback(t *testing.T) {
	uc, _, feedbackRepo := newUserEnv()
	feedbackUC := NewFeedbackUseCase(feedbackRepo, nil)

	_, err := uc.Register("alice", "password123", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := feedbackUC.Create("alice", "title", "content")
		require.NoError(t, err)
	}

	require.NoError(t, uc.Delete("alice"))

	_, err = uc.Get("alice")
	require.ErrorIs(t, err, repositories.ErrNotFound)

	remaining, err := feedbackUC.ListByOwner("alice")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteUnknownUser(t *testing.T) {
	uc, _, _ := newUserEnv()
	require.ErrorIs(t, uc.Delete("nobody"), repositories.ErrNotFound)
}
