package main

import (
	"errors"
	"strings"
	"time"

	"dronedata/internal/logger"
	"dronedata/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var errMissingSecret = errors.New("session.secret is not set (SESSION_SECRET)")

// config is the resolved application configuration.
type config struct {
	Port           string
	DBPath         string
	LogLevel       string
	SessionSecret  string
	SessionTTL     time.Duration
	SessionCookie  string
	SecureCookie   bool
	SweepInterval  time.Duration
	PublicDir      string
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("session.ttl", service.DefaultSessionTTL)
	v.SetDefault("session.cookie", "session-id")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.sweep_interval", service.DefaultSweepInterval)
	v.SetDefault("public.dir", "public")
}

// loadConfig reads configs/config.yml (optional) and lets environment
// variables override any key, e.g. SESSION_SECRET for session.secret.
// A .env file in the working directory is loaded first when present.
func loadConfig(v *viper.Viper) (config, error) {
	_ = godotenv.Load()

	setDefaults(v)
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, err
		}
	}

	cfg := config{
		Port:           v.GetString("port"),
		DBPath:         v.GetString("db.path"),
		LogLevel:       v.GetString("log.level"),
		SessionSecret:  v.GetString("session.secret"),
		SessionTTL:     v.GetDuration("session.ttl"),
		SessionCookie:  v.GetString("session.cookie"),
		SecureCookie:   v.GetBool("session.secure"),
		SweepInterval:  v.GetDuration("session.sweep_interval"),
		PublicDir:      v.GetString("public.dir"),
		AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
	}
	if cfg.SessionSecret == "" {
		return config{}, errMissingSecret
	}
	return cfg, nil
}
