package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-ecommerce-api/app/configs"
	"github.com/Rakhulsr/go-ecommerce-api/app/routes"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/sessions"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the API until ctx is cancelled or the process gets SIGINT or
// SIGTERM, then drains in-flight requests.
func Serve(ctx context.Context, env configs.ENV) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return fmt.Errorf("failed to load session keys: %w", err)
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		return err
	}

	var notifier services.OrderNotifier = services.NopNotifier{}
	if env.MailEnabled() {
		notifier = services.NewMailNotifier(services.NewMailer(services.Config{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
		}))
		log.Printf("Serve: order e-mails enabled via %s:%s", env.EmailHost, env.EmailPort)
	}

	router := routes.NewRouter(db, routes.Options{
		Tokens:                 sessions.NewTokenCodec(keys.AuthKey, keys.EncKey, env.TokenTTL),
		Sessions:               sessions.NewCookieSessionStore(env.TokenTTL, env.IsProduction(), keys.AuthKey, keys.EncKey),
		Notifier:               notifier,
		Debug:                  !env.IsProduction(),
		AllowAdminRegistration: env.AllowAdminRegistration,
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Serve: listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Println("Serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Serve: failed to close database: %v", err)
		}
	}
	return nil
}
