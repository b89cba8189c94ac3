package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/todolist-api/internal/api/middleware"
	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/service"
)

// RouterDeps carries what NewRouter needs to build the handlers.
type RouterDeps struct {
	Tasks      service.TaskService
	Categories service.CategoryService
	Users      service.UserService
	HTTP       config.HTTPConfig
	Logger     *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", middleware.UserIDHeader},
		ExposedHeaders:   []string{"Location", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	r.Use(middleware.NewRateLimiter(deps.HTTP.RateLimitRPS, deps.HTTP.RateLimitBurst).Middleware)

	taskHandler := NewTaskHandler(deps.Tasks, log)
	categoryHandler := NewCategoryHandler(deps.Categories, log)
	userHandler := NewUserHandler(deps.Users, log)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)
			r.Get("/assignee/{userId}", taskHandler.ListTasksByAssignee)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.CreateCategory)
			r.Get("/", categoryHandler.ListCategories)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
