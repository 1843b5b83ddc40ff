package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	anomalyGet "glowbook-service/internal/http-server/handlers/anomalies/get"
	apptCancel "glowbook-service/internal/http-server/handlers/appointments/cancel"
	apptComplete "glowbook-service/internal/http-server/handlers/appointments/complete"
	apptConfirm "glowbook-service/internal/http-server/handlers/appointments/confirm"
	apptCreate "glowbook-service/internal/http-server/handlers/appointments/create"
	apptGet "glowbook-service/internal/http-server/handlers/appointments/get"
	artistCreate "glowbook-service/internal/http-server/handlers/artists/create"
	artistGet "glowbook-service/internal/http-server/handlers/artists/get"
	availGet "glowbook-service/internal/http-server/handlers/availability/get"
	availSet "glowbook-service/internal/http-server/handlers/availability/set"
	reviewCreate "glowbook-service/internal/http-server/handlers/reviews/create"
	reviewGet "glowbook-service/internal/http-server/handlers/reviews/get"
	slotGet "glowbook-service/internal/http-server/handlers/slots/get"

	"glowbook-service/internal/config"
	"glowbook-service/internal/lock"
	svc "glowbook-service/internal/service"
	"glowbook-service/internal/storage/postgres"
	slogpretty "glowbook-service/pkg/handlers/slogPretty"
	"glowbook-service/pkg/middleware/mwLogger"
	"glowbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker, cfg.Slots.GranularityMinutes)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Artists
	router.Post("/artists", artistCreate.New(log, service))
	router.Get("/artists/{id}", artistGet.New(log, service))

	// Availability
	router.Get("/artists/{id}/availability", availGet.New(log, service))
	router.Put("/artists/{id}/availability", availSet.New(log, service))

	// Slots
	router.Get("/artists/{id}/slots", slotGet.New(log, service))

	// Appointments
	router.Post("/appointments", apptCreate.New(log, service))
	router.Get("/appointments", apptGet.New(log, service))
	router.Get("/appointments/{id}", apptGet.New(log, service))
	router.Post("/appointments/{id}/confirm", apptConfirm.New(log, service))
	router.Put("/appointments/{id}/cancel", apptCancel.New(log, service))
	router.Post("/appointments/{id}/complete", apptComplete.New(log, service))

	// Schedule anomalies
	router.Get("/artists/{id}/anomalies", anomalyGet.New(log, service))

	// Reviews
	router.Post("/reviews", reviewCreate.New(log, service))
	router.Get("/artists/{id}/reviews", reviewGet.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	} else {
		log.Debug("Storage is nil, nothing to close")
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
