package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/taskhub/app"
	"github.com/upb/taskhub/internal/observability"
	"github.com/upb/taskhub/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.AccessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	if timeout := deps.Config.Server.RequestTimeout; timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           deps.Config.CORS.MaxAge,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	// Every API route requires a Firebase bearer token mapped to a local user
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", deps.UserHandler.HandleGetMe)
			r.Patch("/", deps.UserHandler.HandleUpdateMe)
		})

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", deps.WorkspaceHandler.HandleList)
			r.Post("/", deps.WorkspaceHandler.HandleCreate)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Get("/", deps.WorkspaceHandler.HandleGet)
				r.Get("/members", deps.WorkspaceHandler.HandleListMembers)
				r.Post("/members", deps.WorkspaceHandler.HandleAddMember)
				r.Get("/activity", deps.WorkspaceHandler.HandleListActivity)
				r.Get("/projects", deps.ProjectHandler.HandleList)
				r.Post("/projects", deps.ProjectHandler.HandleCreate)
			})
		})

		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", deps.ProjectHandler.HandleGet)
			r.Patch("/", deps.ProjectHandler.HandleUpdate)
			r.Get("/boards", deps.ProjectHandler.HandleListBoards)
			r.Post("/boards", deps.ProjectHandler.HandleCreateBoard)
		})

		r.Route("/boards/{boardID}/tasks", func(r chi.Router) {
			r.Get("/", deps.TaskHandler.HandleList)
			r.Post("/", deps.TaskHandler.HandleCreate)
		})

		r.Route("/tasks/{taskID}", func(r chi.Router) {
			r.Get("/", deps.TaskHandler.HandleGet)
			r.Patch("/", deps.TaskHandler.HandleUpdate)
			r.Delete("/", deps.TaskHandler.HandleDelete)
			r.Get("/comments", deps.TaskHandler.HandleListComments)
			r.Post("/comments", deps.TaskHandler.HandleAddComment)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", deps.NotificationHandler.HandleList)
			r.Post("/{notificationID}/read", deps.NotificationHandler.HandleMarkRead)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
