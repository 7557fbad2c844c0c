package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/aditirto/identity-service/internal/auth"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/aditirto/identity-service/internal/permission"
	"github.com/aditirto/identity-service/internal/transport/middleware"
	"github.com/aditirto/identity-service/internal/transport/swagger"
	"github.com/aditirto/identity-service/internal/user"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the HTTP surface. Every protected route declares
// its required (action, resource) pair at registration time; the middleware
// performs the full token + permission check per request.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, permissionHandler *permission.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/auth", func(sr chi.Router) {
		sr.Post("/login", authHandler.Login)
		sr.Post("/register", authHandler.Register)
		sr.Post("/send-code", authHandler.SendCode)
		sr.Post("/verify", authHandler.Verify)
	})

	router.Route("/user", func(sr chi.Router) {
		sr.Group(func(gr chi.Router) {
			gr.Use(authHandler.RequireAccess(rbac.ActionRead, rbac.ResourceUser))
			gr.Get("/me", userHandler.GetMe)
		})
		sr.Group(func(gr chi.Router) {
			gr.Use(authHandler.RequireAccess(rbac.ActionUpdate, rbac.ResourceUser))
			gr.Patch("/me", userHandler.UpdateMe)
		})
		sr.Group(func(gr chi.Router) {
			gr.Use(authHandler.RequireAccess(rbac.ActionDelete, rbac.ResourceUser))
			gr.Delete("/me", userHandler.DeleteMe)
		})
	})

	router.Route("/permission", func(sr chi.Router) {
		sr.Group(func(gr chi.Router) {
			gr.Use(authHandler.RequireAccess(rbac.ActionRead, rbac.ResourcePermission))
			gr.Get("/list", permissionHandler.List)
		})
		sr.Group(func(gr chi.Router) {
			gr.Use(authHandler.RequireAccess(rbac.ActionUpdate, rbac.ResourcePermission))
			gr.Patch("/", permissionHandler.Update)
		})
	})
}
