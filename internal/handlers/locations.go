package handlers

import (
	"net/http"
	"strings"

	"dronedata/internal/models"
	"dronedata/internal/service"

	"github.com/gin-gonic/gin"
)

// locationStatus renders the status page of loc for its own users.
func (h *Handler) locationStatus(loc models.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.currentUser(c)
		if err != nil {
			h.redirectHome(c)
			return
		}
		if !h.authorize(c, *user, service.SuffixStatus) {
			return
		}

		if loc.ListsStations {
			c.HTML(http.StatusOK, loc.StatusTemplate, gin.H{"locations": models.Locations})
			return
		}
		c.HTML(http.StatusOK, loc.StatusTemplate, gin.H{"href": loc.StatusHref})
	}
}

// locationData renders the download list of loc. The listing is built in
// full before anything is written.
func (h *Handler) locationData(loc models.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.currentUser(c)
		if err != nil {
			h.redirectHome(c)
			return
		}
		if !h.authorize(c, *user, service.SuffixData) {
			return
		}

		files, err := h.services.Listing.ListFiles(c.Request.Context(), loc)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("listing_failed", "location", loc.Name, "err", err)
			}
			c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		h.audit(c, models.AccessEvent{
			Type:        models.EventListing,
			Username:    user.Username,
			Location:    user.Location,
			Description: "listed " + loc.DataDir(),
			Metadata:    gin.H{"files": len(files)},
		})
		c.HTML(http.StatusOK, "file", gin.H{
			"title": loc.Title,
			"data":  files,
		})
	}
}

// unmatchedRoute answers every path without a route. Variants of a location
// route that differ only by case or trailing slashes go through the guard so
// the denial is logged and audited; everything else just goes home.
func (h *Handler) unmatchedRoute(c *gin.Context) {
	suffix, ok := locationRouteVariant(c.Request.URL.Path)
	if !ok {
		h.redirectHome(c)
		return
	}
	user, err := h.currentUser(c)
	if err != nil {
		h.redirectHome(c)
		return
	}
	if h.authorize(c, *user, suffix) {
		// the raw target never equals a registered route here
		h.redirectHome(c)
	}
}

// locationRouteVariant reports whether path folds onto /<name> or
// /<name>data and returns the matching guard suffix.
func locationRouteVariant(path string) (string, bool) {
	folded := strings.ToLower(strings.TrimRight(path, "/"))
	for _, loc := range models.Locations {
		if folded == "/"+loc.Name {
			return service.SuffixStatus, true
		}
		if loc.HasData() && folded == "/"+loc.Name+service.SuffixData {
			return service.SuffixData, true
		}
	}
	return "", false
}

// authorize runs the location guard against the raw request target. A denied
// request is meant as 401 but answered with a redirect to the login page.
func (h *Handler) authorize(c *gin.Context, user models.User, suffix string) bool {
	requested := c.Request.URL.RequestURI()
	err := h.services.Guard.Authorize(user, requested, suffix)
	if err == nil {
		return true
	}

	if h.log != nil {
		h.log.Warnw("location_denied",
			"username", user.Username,
			"location", user.Location,
			"path", requested,
			"intended_status", http.StatusUnauthorized,
		)
	}
	h.audit(c, models.AccessEvent{
		Type:        models.EventDenied,
		Username:    user.Username,
		Location:    user.Location,
		Description: err.Error(),
		Metadata:    gin.H{"path": requested, "intended_status": http.StatusUnauthorized},
	})
	h.redirectHome(c)
	return false
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
