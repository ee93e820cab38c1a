package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/configs"
	"github.com/SumanthCsy/Mens-Club-sub000/app/middlewares"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/routes"
	"github.com/SumanthCsy/Mens-Club-sub000/app/services"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/renderer"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/sessions"
	EventBus "github.com/asaskevich/EventBus"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func sessionKeys(env configs.ENV) (*configs.SessionKeys, error) {
	keys, err := configs.LoadSessionKeys(env)
	if err == nil {
		return keys, nil
	}
	if env.IsProduction() {
		return nil, err
	}
	zap.S().Warnf("Serve: %v; using ephemeral session keys", err)
	return configs.EphemeralSessionKeys(), nil
}

// Serve runs the API until ctx is cancelled, then drains in-flight
// requests, detaches live cart mirrors and flushes pending notifications.
func Serve(ctx context.Context, env configs.ENV) error {
	keys, err := sessionKeys(env)
	if err != nil {
		return err
	}

	store, err := configs.OpenStore(ctx, env)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			zap.S().Warnf("Serve: closing store: %v", err)
		}
	}()

	bus := EventBus.New()
	mailer := services.NewMailer(services.Config{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
	notifier := services.NewNotifier(mailer, env.OrderNotifyTo, models.DefaultStoreSettings().StoreName)
	if err := notifier.Register(bus); err != nil {
		return err
	}

	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.KeyPairs()...)
	app := routes.NewApp(store, bus, renderer.New(!env.IsProduction()), sessionStore, notifier)
	defer app.Registry.Close()

	handler := routes.Handler(app)
	if env.IsProduction() {
		protect := csrf.Protect(keys.AuthKey[:32], csrf.Secure(true), csrf.Path("/"))
		handler = protect(middlewares.CSRFTokenHeader(handler))
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Serve: listening on %s (store %s, env %s)", server.Addr, env.StoreDriver, env.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("Serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnf("Serve: shutdown: %v", err)
	}
	bus.WaitAsync()
	return nil
}
