package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/golinkup/internal/middleware"
	"github.com/tempizhere/golinkup/internal/service"
	"go.uber.org/zap"
)

// NewRouter создаёт маршрутизатор и регистрирует обработчики.
// Идентичность запроса разбирается один раз в AuthMiddleware и передаётся
// обработчикам через контекст.
func NewRouter(a *App, auth *service.AuthService, trustedSubnet string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.GzipMiddleware)
	r.Use(middleware.AuthMiddleware(auth, logger))

	r.Get("/", a.HandleIndex)
	r.Post("/register", a.HandleRegister)
	r.Post("/login", a.HandleLogin)
	r.Get("/ping", a.HandlePing)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard", a.HandleDashboard)
		r.Post("/dashboard", a.HandleCreateLink)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.TrustedSubnetMiddleware(trustedSubnet, logger))
		r.Get("/api/internal/stats", a.HandleInternalStats)
	})

	r.Get("/stats/{slug}", a.HandleStats)
	r.Get("/{slug}", a.HandleRedirect)

	return r
}
