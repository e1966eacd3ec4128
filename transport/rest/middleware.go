package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/justinas/alice"
)

func logRequest(logger *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("received request", "proto", r.Proto, "method", r.Method, "uri", r.URL.RequestURI())

			next.ServeHTTP(w, r)
		})
	}
}

func recoverPanic(logger *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("recovered from panic", "error", fmt.Sprintf("%v", err), "uri", r.URL.RequestURI())
					w.Header().Set("Connection", "close")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
