package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-bloglist-api/internal/config"
	"go-bloglist-api/internal/handler"
	"go-bloglist-api/internal/middleware"
)

type Handlers struct {
	Health *handler.HealthHandler
	Login  *handler.LoginHandler
	Blog   *handler.BlogHandler
	User   *handler.UserHandler
}

func New(cfg *config.Config, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, cfg.TrustedProxies)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown endpoint"}`))
	})

	r.Get("/health", h.Health.Check)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(middleware.TokenExtractor)

		api.Post("/login", h.Login.Login)

		api.Route("/blogs", func(blogs chi.Router) {
			blogs.Get("/", h.Blog.List)
			blogs.Post("/", h.Blog.Create)
			blogs.Get("/stats", h.Blog.Stats)
			blogs.Get("/{id}", h.Blog.Get)
			blogs.Put("/{id}", h.Blog.UpdateLikes)
			blogs.Delete("/{id}", h.Blog.Delete)
		})

		api.Route("/users", func(users chi.Router) {
			users.Get("/", h.User.List)
			users.Post("/", h.User.Create)
		})
	})

	return r
}
