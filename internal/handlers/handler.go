package handlers

import (
	"path/filepath"
	"time"

	"dronedata/internal/logger"
	"dronedata/internal/models"
	"dronedata/internal/service"
	"dronedata/web"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultCookieName = "session-id"

// Options configures cookies and the public directory.
type Options struct {
	CookieName   string
	SessionTTL   time.Duration
	SecureCookie bool
	PublicDir    string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = service.DefaultSessionTTL
	}
	if opts.PublicDir == "" {
		opts.PublicDir = "public"
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	// Paths are matched literally; /pulchowk/ must not be redirected onto /pulchowk.
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(web.Templates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Login, sign-up and logout
	h.registerAuthRoutes(router)

	// Everything below requires a live session
	protected := router.Group("/", h.sessionMiddleware)
	{
		h.registerLocationRoutes(protected)
		h.registerDataRoutes(protected)
		protected.GET("/ws", h.wsConnect)
		h.registerAPIRoutes(protected)
	}
	router.NoRoute(h.sessionMiddleware, h.unmatchedRoute)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.POST("/", h.login)
	r.POST("/android", h.androidLogin)
	r.POST("/signup", h.signUp)
	r.GET("/logout", h.logout)
}

// registerLocationRoutes adds GET /<name> for every location and
// GET /<name>data for those with a data directory.
func (h *Handler) registerLocationRoutes(rg *gin.RouterGroup) {
	for _, loc := range models.Locations {
		rg.GET("/"+loc.Name, h.locationStatus(loc))
		if loc.HasData() {
			rg.GET("/"+loc.Name+service.SuffixData, h.locationData(loc))
		}
	}
}

func (h *Handler) registerDataRoutes(rg *gin.RouterGroup) {
	rg.Static("/data", filepath.Join(h.opts.PublicDir, "data"))
	rg.StaticFile("/datadefault.txt", filepath.Join(h.opts.PublicDir, "datadefault.txt"))
}

func (h *Handler) registerAPIRoutes(rg *gin.RouterGroup) {
	api := rg.Group("/api/v1")
	{
		api.GET("/logs", h.getLogs)
	}
}
