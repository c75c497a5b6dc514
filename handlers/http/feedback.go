package httpHandler

import (
	"errors"
	"feedback-server/entities"
	"feedback-server/repositories"
	"feedback-server/usecases"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback *usecases.FeedbackUseCase
}

func NewFeedbackHandler(feedback *usecases.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type FeedbackRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ShowAddForm handles GET /users/:username/feedback/add
func (h *FeedbackHandler) ShowAddForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":   "feedback",
		"fields": []string{"title", "content"},
	})
}

// AddFeedback handles POST /users/:username/feedback/add. The path
// username equals the session identity here; RequireSelf runs on this
// route exactly like on every other protected one.
func (h *FeedbackHandler) AddFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	feedback, err := h.feedback.Create(c.Param("username"), req.Title, req.Content)
	if err != nil {
		var fieldErr *usecases.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Feedback added!",
		"data":    feedback,
	})
}

// ShowUpdateForm handles GET /feedback/:id/update — current values for
// form prefill, owner only.
func (h *FeedbackHandler) ShowUpdateForm(c *gin.Context) {
	feedback, ok := h.ownedFeedback(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form": "feedback",
		"data": feedback,
	})
}

// UpdateFeedback handles POST /feedback/:id/update
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	feedback, ok := h.ownedFeedback(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.feedback.Update(feedback.ID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback updated!",
		"data":    updated,
	})
}

// DeleteFeedback handles POST /feedback/:id/delete
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	feedback, ok := h.ownedFeedback(c)
	if !ok {
		return
	}

	if err := h.feedback.Delete(feedback.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}

// ownedFeedback loads the entry from the path id and enforces that its
// stored owner matches the session identity. Ownership comes from the
// row itself; there is no username in these paths. A mismatch gets the
// same redirect an anonymous request would.
func (h *FeedbackHandler) ownedFeedback(c *gin.Context) (*entities.Feedback, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback id"})
		return nil, false
	}

	feedback, err := h.feedback.Get(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return nil, false
	}

	if feedback.Username != CurrentUsername(c) {
		redirectToLogin(c)
		return nil, false
	}
	return feedback, true
}
