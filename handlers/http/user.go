package httpHandler

import (
	"errors"
	"feedback-server/repositories"
	"feedback-server/usecases"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    *usecases.UserUseCase
	feedback *usecases.FeedbackUseCase
	sessions *usecases.SessionUseCase
}

func NewUserHandler(users *usecases.UserUseCase, feedback *usecases.FeedbackUseCase, sessions *usecases.SessionUseCase) *UserHandler {
	return &UserHandler{users: users, feedback: feedback, sessions: sessions}
}

// ShowUser handles GET /users/:username — profile plus the user's
// feedback, most recent first. Runs behind RequireSession+RequireSelf.
func (h *UserHandler) ShowUser(c *gin.Context) {
	username := c.Param("username")

	user, err := h.users.Get(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	feedback, err := h.feedback.ListByOwner(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":     user,
			"feedback": feedback,
		},
	})
}

// DeleteUser handles POST /users/:username/delete — removes the account
// and every feedback entry it owns, then ends all its sessions.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.users.Delete(username); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	_ = h.sessions.ClearUser(username)
	clearSessionCookie(c)

	c.Redirect(http.StatusSeeOther, "/login?flash=account-deleted")
}
