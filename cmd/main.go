package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/auth"
	"github.com/ukydev/showroom/internal/config"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/handlers"
	"github.com/ukydev/showroom/internal/mailer"
	"github.com/ukydev/showroom/internal/media"
)

const shutdownTimeout = 15 * time.Second

// newUploader returns the Cloudinary client, or a disabled uploader when no
// credentials are configured so the public site still starts.
func newUploader(cfg config.CloudinaryConfig) media.Uploader {
	if !cfg.Configured() {
		return media.Disabled{}
	}
	cld, err := media.NewCloudinary(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create Cloudinary client, media uploads disabled")
		return media.Disabled{}
	}
	return cld
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.ConfigureLogging()
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	store := db.NewStore(client, cfg.MongoDB)
	router, err := handlers.NewRouter(handlers.Deps{
		Config:   cfg,
		Vehicles: store.Vehicles,
		Content:  store.Content,
		Media:    newUploader(cfg.Cloudinary),
		Mailer:   mailer.New(cfg),
		Auth:     auth.NewService(cfg.Admin.Email, cfg.Admin.Password, auth.WithSecureCookies(cfg.SecureCookies)),
		Health: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}

	srv := newServer(cfg, router)
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("HTTP server failed")
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
