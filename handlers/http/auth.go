package httpHandler

import (
	"errors"
	"feedback-server/usecases"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    *usecases.UserUseCase
	sessions *usecases.SessionUseCase
}

func NewAuthHandler(users *usecases.UserUseCase, sessions *usecases.SessionUseCase) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ShowRegister handles GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":   "register",
		"fields": []string{"username", "password", "email", "first_name", "last_name"},
	})
}

// Register handles POST /register: creates the user and binds a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.Email, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, usecases.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Username is taken. Please select another",
				"field": "username",
			})
			return
		}
		var fieldErr *usecases.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fieldErr.Message,
				"field": fieldErr.Field,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	if !h.bindSession(c, user.Username) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Successfully Registered!",
		"data":    user,
	})
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form":   "login",
		"fields": []string{"username", "password"},
		"flash":  c.Query("flash"),
	})
}

// Login handles POST /login. A failed attempt never reveals whether the
// username exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if !h.bindSession(c, user.Username) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back",
		"data":    user,
	})
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		_ = h.sessions.Clear(token)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login?flash=goodbye")
}

func (h *AuthHandler) bindSession(c *gin.Context, username string) bool {
	token, err := h.sessions.Bind(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return false
	}
	c.SetCookie(SessionCookie, token, int(h.sessions.TTL.Seconds()), "/", "", false, true)
	return true
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
