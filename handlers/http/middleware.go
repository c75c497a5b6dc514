package httpHandler

import (
	"feedback-server/usecases"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie holding the session token.
const SessionCookie = "session_token"

const identityKey = "session_username"

type AuthMiddleware struct {
	sessions *usecases.SessionUseCase
}

func NewAuthMiddleware(sessions *usecases.SessionUseCase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession resolves the session cookie and stores the
// authenticated username in the request context. Anything without a
// valid session gets the uniform redirect before any store access.
func (m *AuthMiddleware) RequireSession(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		redirectToLogin(c)
		return
	}
	username, ok := m.sessions.Resolve(token)
	if !ok {
		redirectToLogin(c)
		return
	}
	c.Set(identityKey, username)
	c.Next()
}

// RequireSelf guards /users/:username routes: the authenticated identity
// must match the username in the path. Chained after RequireSession.
func (m *AuthMiddleware) RequireSelf(c *gin.Context) {
	username := CurrentUsername(c)
	if username == "" || username != c.Param("username") {
		redirectToLogin(c)
		return
	}
	c.Next()
}

// RedirectIfAuthenticated sends already-logged-in visitors of /register
// and /login straight to their profile page.
func (m *AuthMiddleware) RedirectIfAuthenticated(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		if username, ok := m.sessions.Resolve(token); ok {
			c.Redirect(http.StatusSeeOther, "/users/"+username)
			c.Abort()
			return
		}
	}
	c.Next()
}

// CurrentUsername returns the authenticated username placed in the
// context by RequireSession, or "" for anonymous requests.
func CurrentUsername(c *gin.Context) string {
	value, ok := c.Get(identityKey)
	if !ok {
		return ""
	}
	username, _ := value.(string)
	return username
}

// redirectToLogin aborts with the uniform unauthorized outcome.
// Not-logged-in and wrong-owner are deliberately indistinguishable.
func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login?flash=unauthorized")
	c.Abort()
}
