package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/obi/bookshelf-api/internal/api/handlers"
	"github.com/obi/bookshelf-api/internal/api/middleware"
	"github.com/obi/bookshelf-api/internal/config"
	"github.com/obi/bookshelf-api/internal/service"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	bookHandler := handlers.NewBookHandler(services.Book, services.Image)
	healthHandler := handlers.NewHealthHandler()

	r.Get("/health", healthHandler.Check)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in", authHandler.SignIn)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, logger.Named("auth")))

			r.Route("/books", func(r chi.Router) {
				r.Post("/", bookHandler.Create)
				r.Get("/", bookHandler.List)
				r.Get("/{id}", bookHandler.Get)
				r.Patch("/{id}", bookHandler.Update)
				r.Delete("/{id}", bookHandler.Delete)
			})
		})
	})

	return r
}
