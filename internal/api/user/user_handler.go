package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otus-hla/social-network/app/observability/metrics"
	"github.com/otus-hla/social-network/internal/api"
	"github.com/otus-hla/social-network/internal/types"
)

type UserHandler struct {
	UserService UserService
	logger      *slog.Logger
}

func NewUserHandler(userService UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		logger:      logger,
		UserService: userService,
	}
}

// Register handles POST /user/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req types.RegisterUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.UserService.RegisterUser(ctx, req)
	metrics.Get().RegisterRequestsTotal.Add(ctx, 1)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrBadRequest):
			l.WarnContext(ctx, "Invalid registration payload", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, "Missing or malformed registration fields")
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusConflict, "User already exists")
		default:
			l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"user_id": userID.String()})
}

// GetProfile handles GET /user/get/{id}.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetProfile"))

	id := chi.URLParam(r, "id")
	profile, err := h.UserService.GetUserProfile(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrBadRequest):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user id")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			l.ErrorContext(ctx, "Profile lookup failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
}

// Search handles GET /user/search?first_name=&last_name=.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Search"))

	query := types.UserSearchQuery{
		FirstName: r.URL.Query().Get("first_name"),
		LastName:  r.URL.Query().Get("last_name"),
	}

	profiles, err := h.UserService.SearchUsers(ctx, query)
	metrics.Get().SearchRequestsTotal.Add(ctx, 1)
	if err != nil {
		l.ErrorContext(ctx, "User search failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profiles)
}
