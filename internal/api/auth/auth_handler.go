package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/otus-hla/social-network/app/observability/metrics"
	"github.com/otus-hla/social-network/internal/api"
	"github.com/otus-hla/social-network/internal/types"
)

type AuthHandler struct {
	AuthService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		AuthService: authService,
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing id or password")
		return
	}

	token, err := h.AuthService.Login(ctx, req.ID, req.Password)
	metrics.Get().LoginRequestsTotal.Add(ctx, 1)
	if err != nil {
		if errors.Is(err, types.ErrUnauthenticated) {
			l.WarnContext(ctx, "Authentication failed", slog.String("user_id", req.ID))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, LoginResponse{Token: token})
}
