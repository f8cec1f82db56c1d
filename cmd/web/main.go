package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/config"
	"github.com/AdamBeresnev/matchmaker/internal/db"
	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	"github.com/AdamBeresnev/matchmaker/internal/nats"
	"github.com/AdamBeresnev/matchmaker/internal/service"
	"github.com/AdamBeresnev/matchmaker/internal/ws"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.Logging()

	database, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	providers := middleware.InitAuth(cfg.OAuth)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Auth.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	hub := ws.NewHub(cfg.HTTP.AllowedOrigins)
	defer hub.Close()

	notifiers := service.MatchNotifiers{hub}
	if cfg.NATS.URL != "" {
		n, err := nats.Connect(cfg.NATS)
		if err != nil {
			log.WithError(err).Warn("NATS unavailable, match updates stay in process")
		} else {
			defer n.Conn.Drain()
			notifiers = append(notifiers, nats.NewPublisher(n.Conn, cfg.NATS.Subject))
			log.WithField("subject", cfg.NATS.Subject).Info("Publishing match updates to NATS")
		}
	}

	app := newApplication(cfg, database, sessionManager, hub, notifiers, providers)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
