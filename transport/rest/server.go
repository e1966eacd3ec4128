package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/justinas/alice"
)

// NewRouter wires the HTTP routes behind the logging and recovery middleware.
func NewRouter(logger *slog.Logger, scores ScoresProvider) http.Handler {
	log := logger.With("component", "rest")

	router := chi.NewRouter()

	ping := NewPingHandler()
	router.Get("/ping", ping.PingHandler)

	scoresHandler := NewScoresHandler(log, scores)
	router.Get("/scores", scoresHandler.GetScores)

	return alice.New(recoverPanic(log), logRequest(log)).Then(router)
}

func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
