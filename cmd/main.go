package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "dronedata/docs"
	"dronedata/internal/handlers"
	"dronedata/internal/logger"
	"dronedata/internal/repository"
	"dronedata/internal/repository/db"
	"dronedata/internal/server"
	"dronedata/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title                       Drone data portal API
// @version                     1.0
// @description                 JSON endpoints of the location-scoped drone data portal.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          header
// @name                        Cookie
// @description                 session-id cookie set by POST /, /android or /signup
func main() {
	// load config.yml, .env and environment
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// open DB
	conn, err := openDB(cfg.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, cfg.PublicDir)
	services := service.NewService(repos, service.Options{
		SessionSecret: []byte(cfg.SessionSecret),
		SessionTTL:    cfg.SessionTTL,
		Log:           log.Named("sweeper"),
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		CookieName:   cfg.SessionCookie,
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.SecureCookie,
		PublicDir:    cfg.PublicDir,
	})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// drop expired sessions in the background
	go services.Sweeper.Run(ctx, cfg.SweepInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg, server.WithCORS(apiHandler.InitRoutes(), cfg.AllowedOrigins), log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database and applies migrations.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", path)
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config, handler http.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_server_starting", "port", cfg.Port, "public_dir", cfg.PublicDir)
		if err := srv.Run(cfg.Port, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
