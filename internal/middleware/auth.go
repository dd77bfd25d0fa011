package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/signet/signet/internal/auth"
	"github.com/signet/signet/internal/metrics"
	"github.com/signet/signet/internal/model"
	"github.com/signet/signet/internal/repository"
)

// UserFinder looks up the internal user record for a token subject.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.Tokens
	Store   UserFinder
	Metrics metrics.Recorder
}

// Auth returns a middleware that resolves a bearer token into a user identity.
// It extracts the token from the Authorization header, verifies its signature
// and expiry, looks up the subject in the store, and injects the resolved user
// into the request context. The resolution is re-run independently for every
// request; nothing is cached, so a deleted user's still-valid token is rejected.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("identity resolution failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				cfg.Metrics.IncIdentityResolution("rejected")
				writeAuthError(w)
				return
			}

			subject, err := cfg.Tokens.Verify(token)
			if err != nil {
				cfg.Logger.Warn("identity resolution failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				cfg.Metrics.IncIdentityResolution("rejected")
				writeAuthError(w)
				return
			}

			user, err := cfg.Store.GetUserByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// Subject vanished after issuance. Externally identical
					// to any other token defect.
					cfg.Logger.Warn("identity resolution failed",
						slog.String("reason", "unknown_subject"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					cfg.Metrics.IncIdentityResolution("rejected")
					writeAuthError(w)
					return
				}

				cfg.Logger.Error("database error during identity resolution",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				cfg.Metrics.IncIdentityResolution("error")
				writeServiceError(w)
				return
			}

			cfg.Logger.Info("identity resolved",
				slog.Int64("user_id", user.ID),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)
			cfg.Metrics.IncIdentityResolution("resolved")

			ctx := auth.ContextWithIdentity(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
// Returns the empty string for a missing or malformed header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same body for every auth failure so callers cannot tell which
// check rejected them.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing bearer token"}}`))
}

// writeServiceError writes a 503 for store-connectivity failures.
// These are a distinct class from credential failures and must not be
// reported as 401.
func writeServiceError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`{"error":{"code":"SERVICE_UNAVAILABLE","message":"Temporary service failure"}}`))
}
