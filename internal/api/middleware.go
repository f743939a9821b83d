package api

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/draftforge/draftforge/internal/alert"
	"github.com/draftforge/draftforge/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// Identity reads the authenticated user id injected by the upstream
// auth collaborator. A request without one is always an authorization
// failure, never a silent no-op.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		userID, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil || userID <= 0 {
			writeError(w, domain.ErrMissingUser)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

// Logging logs request processing time.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// Recover converts handler panics into 500s and pushes them to the
// operator channel.
func Recover(alerts *alert.Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					slog.Error("panic recovered in handler",
						"panic", v,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					alerts.Panic(v, r.Method+" "+r.URL.Path)
					http.Error(w, `{"error":{"kind":"storage","message":"internal error"}}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
