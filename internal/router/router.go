package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/otus-hla/social-network/internal/api/auth"
	"github.com/otus-hla/social-network/internal/api/user"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	AuthHandler            *auth.AuthHandler
	UserHandler            *user.UserHandler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected
// to be applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// Public routes: registration and login issue credentials, they
	// cannot require them.
	r.Group(func(r chi.Router) {
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/user/register", cfg.UserHandler.Register)
		r.Get("/user/get/{id}", cfg.UserHandler.GetProfile)
	})

	// Protected routes require a valid Bearer access token.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Get("/user/search", cfg.UserHandler.Search)
	})

	return r
}
