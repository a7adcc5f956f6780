package handlers

import (
	"net/http"

	"dronedata/internal/models"

	"github.com/gin-gonic/gin"
)

// startSession issues a session for user and sets the cookie.
func (h *Handler) startSession(c *gin.Context, user *models.User) error {
	token, _, err := h.services.Sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, int(h.opts.SessionTTL.Seconds()), "/", "", h.opts.SecureCookie, true)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
}

// currentUser reloads the account behind the session set by sessionMiddleware.
func (h *Handler) currentUser(c *gin.Context) (*models.User, error) {
	user, err := h.services.Authentication.UserByID(c.Request.Context(), c.GetInt(ctxUserID))
	if err != nil {
		if h.log != nil {
			h.log.Warnw("session_user_lookup_failed", "user_id", c.GetInt(ctxUserID), "err", err)
		}
		return nil, err
	}
	return user, nil
}

// audit records e and only logs failures, so a broken audit store never blocks a page.
func (h *Handler) audit(c *gin.Context, e models.AccessEvent) {
	if h.services.AccessLog == nil {
		return
	}
	if err := h.services.AccessLog.Record(c.Request.Context(), e); err != nil && h.log != nil {
		h.log.Errorw("audit_record_failed", "type", e.Type, "err", err)
	}
}
