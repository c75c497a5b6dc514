package usecases

import (
	"feedback-server/entities"
	"feedback-server/repositories"
)

// Feedback event names pushed to the owner's live connections.
const (
	EventFeedbackCreated = "feedback_created"
	EventFeedbackUpdated = "feedback_updated"
	EventFeedbackDeleted = "feedback_deleted"
)

// EventPublisher pushes feedback change notifications to the owning
// user's live connections. Implementations must tolerate the user not
// being connected.
type EventPublisher interface {
	Publish(username, event string, feedback *entities.Feedback)
}

// FeedbackUseCase is the feedback store. It performs no authorization;
// callers verify ownership against the session identity before calling
// Update or Delete.
type FeedbackUseCase struct {
	FeedbackRepo repositories.FeedbackRepository
	Events       EventPublisher
}

func NewFeedbackUseCase(feedbackRepo repositories.FeedbackRepository, events EventPublisher) *FeedbackUseCase {
	return &FeedbackUseCase{
		FeedbackRepo: feedbackRepo,
		Events:       events,
	}
}

// Create inserts a new entry owned by username.
func (uc *FeedbackUseCase) Create(username, title, content string) (*entities.Feedback, error) {
	if username == "" {
		return nil, newFieldError("username", "username is required")
	}
	if title == "" {
		return nil, newFieldError("title", "title is required")
	}
	if content == "" {
		return nil, newFieldError("content", "content is required")
	}

	feedback := &entities.Feedback{
		Title:    title,
		Content:  content,
		Username: username,
	}
	if err := uc.FeedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	uc.publish(feedback.Username, EventFeedbackCreated, feedback)
	return feedback, nil
}

// Get retrieves an entry by id.
func (uc *FeedbackUseCase) Get(id uint) (*entities.Feedback, error) {
	return uc.FeedbackRepo.GetByID(id)
}

// ListByOwner returns all of the owner's entries, most recent first.
func (uc *FeedbackUseCase) ListByOwner(username string) ([]entities.Feedback, error) {
	if username == "" {
		return nil, newFieldError("username", "username is required")
	}
	return uc.FeedbackRepo.GetByOwner(username)
}

// Update replaces title and content of an existing entry. Id and owner
// never change.
func (uc *FeedbackUseCase) Update(id uint, title, content string) (*entities.Feedback, error) {
	if title == "" {
		return nil, newFieldError("title", "title is required")
	}
	if content == "" {
		return nil, newFieldError("content", "content is required")
	}

	existing, err := uc.FeedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	existing.Title = title
	existing.Content = content
	if err := uc.FeedbackRepo.Update(existing); err != nil {
		return nil, err
	}
	uc.publish(existing.Username, EventFeedbackUpdated, existing)
	return existing, nil
}

// Delete removes an entry by id.
func (uc *FeedbackUseCase) Delete(id uint) error {
	existing, err := uc.FeedbackRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := uc.FeedbackRepo.Delete(id); err != nil {
		return err
	}
	uc.publish(existing.Username, EventFeedbackDeleted, existing)
	return nil
}

func (uc *FeedbackUseCase) publish(username, event string, feedback *entities.Feedback) {
	if uc.Events != nil {
		uc.Events.Publish(username, event, feedback)
	}
}
