package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"matchmaker.db?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Auth  Auth
	HTTP  HTTP
	NATS  NATS
	OAuth OAuth
}

type Auth struct {
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	SessionLifetime time.Duration `envconfig:"SESSION_LIFETIME" default:"24h"`
}

type HTTP struct {
	// Requests per minute per client IP, 0 disables the limiter
	RateLimit      int      `envconfig:"RATE_LIMIT" default:"100"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type NATS struct {
	URL     string `envconfig:"NATS_URL"`
	Token   string `envconfig:"NATS_TOKEN"`
	Subject string `envconfig:"NATS_SUBJECT" default:"matchmaker.matches"`
}

type OAuth struct {
	DiscordKey         string `envconfig:"DISCORD_KEY"`
	DiscordSecret      string `envconfig:"DISCORD_SECRET"`
	DiscordCallbackURL string `envconfig:"DISCORD_CALLBACK_URL"`
	GoogleKey          string `envconfig:"GOOGLE_KEY"`
	GoogleSecret       string `envconfig:"GOOGLE_SECRET"`
	GoogleCallbackURL  string `envconfig:"GOOGLE_CALLBACK_URL"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if c.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	return &c, nil
}

// Logging configures the process-wide logrus logger.
func (c *Config) Logging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, falling back to info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
}
