package handlers

import (
	"github.com/gin-gonic/gin"
)

// Context keys set by loadSession for downstream handlers.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
)

// loadSession resolves the session cookie into the gin context without
// aborting: storefront actions like products stay public, and per-action
// handlers call currentUser to enforce authentication where needed. The
// browser-local login flag is never consulted here; the server-side session
// is the only authority.
func (h *Handler) loadSession(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}
	sess, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		// Expired or tampered cookie; treat the request as anonymous.
		c.Next()
		return
	}
	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxUsername, sess.Username)
	c.Next()
}

// currentUser returns the authenticated user id, or ok=false when the
// request carries no valid session.
func currentUser(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
