package usecases

import (
	"testing"

	"feedback-server/entities"
	"feedback-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	Username string
	Event    string
	ID       uint
}

type fakePublisher struct {
	events []recordedEvent
}

func (p *fakePublisher) Publish(username, event string, feedback *entities.Feedback) {
	p.events = append(p.events, recordedEvent{Username: username, Event: event, ID: feedback.ID})
}

func TestFeedbackCreateRequiresFields(t *testing.T) {
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), nil)

	_, err := uc.Create("alice", "", "content")
	require.ErrorIs(t, err, ErrValidation)

	_, err = uc.Create("alice", "title", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = uc.Create("", "title", "content")
	require.ErrorIs(t, err, ErrValidation)
}

func TestFeedbackListByOwnerOrder(t *testing.T) {
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), nil)

	for _, title := range []string{"first", "second", "third"} {
		_, err := uc.Create("alice", title, "content")
		require.NoError(t, err)
	}

	entries, err := uc.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []uint{3, 2, 1}, []uint{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, "third", entries[0].Title)
}

func TestFeedbackUpdateRoundTrip(t *testing.T) {
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), nil)

	created, err := uc.Create("alice", "T", "C")
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, "T2", "C2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alice", updated.Username)

	got, err := uc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "C2", got.Content)
	assert.Equal(t, "alice", got.Username)
}

func TestFeedbackUpdateMissing(t *testing.T) {
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), nil)
	_, err := uc.Update(42, "title", "content")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFeedbackDeleteMissing(t *testing.T) {
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), nil)
	require.ErrorIs(t, uc.Delete(42), repositories.ErrNotFound)
}

func TestFeedbackEventsPublished(t *testing.T) {
	publisher := &fakePublisher{}
	uc := NewFeedbackUseCase(newMemFeedbackRepo(), publisher)

	created, err := uc.Create("alice", "T", "C")
	require.NoError(t, err)
	_, err = uc.Update(created.ID, "T2", "C2")
	require.NoError(t, err)
	require.NoError(t, uc.Delete(created.ID))

	require.Len(t, publisher.events, 3)
	assert.Equal(t, recordedEvent{"alice", EventFeedbackCreated, created.ID}, publisher.events[0])
	assert.Equal(t, recordedEvent{"alice", EventFeedbackUpdated, created.ID}, publisher.events[1])
	assert.Equal(t, recordedEvent{"alice", EventFeedbackDeleted, created.ID}, publisher.events[2])
}
