package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by sessionMiddleware.
const (
	ctxUserID    = "userId"
	ctxSessionID = "sessionId"
)

// sessionMiddleware admits requests carrying a live session cookie.
// Anything else is sent back to the login page before the handler runs.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(h.opts.CookieName)
	if err != nil || token == "" {
		h.redirectHome(c)
		return
	}

	sess, err := h.services.Sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("session_rejected", "path", c.Request.URL.Path, "err", err)
		}
		h.clearSessionCookie(c)
		h.redirectHome(c)
		return
	}

	// store in Gin context
	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxSessionID, sess.ID)
	c.Next()
}

func (h *Handler) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}
