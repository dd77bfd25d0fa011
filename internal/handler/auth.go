package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/signet/signet/internal/auth"
	"github.com/signet/signet/internal/handler/dto"
	"github.com/signet/signet/internal/metrics"
	"github.com/signet/signet/internal/model"
	"github.com/signet/signet/internal/repository"
)

const (
	// minLoginDuration is the minimum time to spend on a login attempt so
	// unknown-email and wrong-password rejections are not distinguishable
	// by response timing.
	minLoginDuration = 200 * time.Millisecond

	maxEmailLength    = 254
	maxFullNameLength = 200
)

// UserStore is the credential store contract the auth handlers depend on.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// AuthHandler handles registration, login and identity-check endpoints.
type AuthHandler struct {
	logger  *slog.Logger
	store   UserStore
	tokens  *auth.Tokens
	metrics metrics.Recorder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger *slog.Logger, store UserStore, tokens *auth.Tokens, recorder metrics.Recorder) *AuthHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthHandler{
		logger:  logger,
		store:   store,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.IncRegistration("invalid")
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := validateRegistration(&req); err != nil {
		h.metrics.IncRegistration("invalid")
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	hashStart := time.Now()
	passwordHash, err := auth.HashPassword(req.Password)
	h.metrics.ObserveHashDuration(time.Since(hashStart))
	if err != nil {
		h.logger.Error("failed to hash password", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed")
		return
	}

	user, err := h.store.CreateUser(ctx, req.Email, passwordHash, req.FullName)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			h.metrics.IncRegistration("duplicate")
			writeError(w, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered")
			return
		}
		h.logger.Error("failed to create user", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Temporary service failure")
		return
	}

	h.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
	)
	h.metrics.IncRegistration("created")

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /api/v1/auth/login.
// Unknown email and wrong password produce byte-identical 401 responses,
// and the handler enforces a minimum duration so the two are not separable
// by timing either.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		h.logger.Error("database error during login", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Temporary service failure")
		return
	}

	match := false
	if user != nil {
		hashStart := time.Now()
		match, _ = auth.VerifyPassword(req.Password, user.PasswordHash)
		h.metrics.ObserveHashDuration(time.Since(hashStart))
	}

	if user == nil || !match {
		h.logger.Warn("login failed",
			slog.String("ip", r.RemoteAddr),
		)
		h.metrics.IncLogin("failure")
		padDuration(start, minLoginDuration)
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		h.logger.Error("failed to issue token", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	h.logger.Info("login successful",
		slog.Int64("user_id", user.ID),
	)
	h.metrics.IncLogin("success")
	h.metrics.IncTokenIssued()

	padDuration(start, minLoginDuration)
	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me handles GET /api/v1/auth/me.
// The auth middleware has already resolved the identity; this just shapes it.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing bearer token")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// validateRegistration checks the registration input fields.
func validateRegistration(req *dto.RegisterRequest) error {
	switch {
	case req.Email == "" || len(req.Email) > maxEmailLength:
		return errors.New("email is required")
	case !strings.Contains(req.Email, "@"):
		return errors.New("email is not valid")
	case req.Password == "":
		return errors.New("password is required")
	case req.FullName == "" || len(req.FullName) > maxFullNameLength:
		return errors.New("full_name is required")
	}
	return nil
}

// padDuration sleeps until at least min has elapsed since start.
func padDuration(start time.Time, min time.Duration) {
	if elapsed := time.Since(start); elapsed < min {
		time.Sleep(min - elapsed)
	}
}
