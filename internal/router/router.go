package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-blog-api/internal/config"
	"go-blog-api/internal/handler"
	"go-blog-api/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handler.UserHandler,
	loginHandler *handler.LoginHandler,
	blogHandler *handler.BlogHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/token", loginHandler.Token)
	r.Post("/users/", userHandler.Create)

	r.With(authMiddleware.OptionalAuth).Post("/blogs/", blogHandler.Create)
	r.Get("/blogs", blogHandler.List)
	r.Get("/blogs/{id}", blogHandler.Get)
	r.With(authMiddleware.RequireAuth).Put("/blogs/{id}", blogHandler.Update)
	r.With(authMiddleware.RequireAuth).Delete("/blogs/{id}", blogHandler.Delete)

	return r
}
