package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZhuneIDS/apitareas/internal/api/http/handler"
	"github.com/ZhuneIDS/apitareas/internal/api/http/middleware"
	"github.com/ZhuneIDS/apitareas/internal/api/http/response"
	"github.com/ZhuneIDS/apitareas/internal/logger"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/service"
)

// Router represents the HTTP router of the task API.
// It wires handlers, middleware and the metrics endpoint.
type Router struct {
	authService    *service.Auth
	taskService    *service.Task
	contextManager model.ContextManager
	registry       *prometheus.Registry
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates new Router instance.
//
// Parameters:
//   - authService: The registration, login and token verification service
//   - taskService: The task CRUD service
//   - contextManager: Stores the authenticated username in request context
//   - registry: Prometheus registry for request metrics and /metrics
//   - allowedOrigins: CORS allowed origins
//   - logger: The logger for request logging
func New(
	authService *service.Auth,
	taskService *service.Task,
	contextManager model.ContextManager,
	registry *prometheus.Registry,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		taskService:    taskService,
		contextManager: contextManager,
		registry:       registry,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the handler tree with all routes and middleware.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	metrics := middleware.NewMetrics(r.registry)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(logging.Handler)
	mux.Use(chimw.Recoverer)
	mux.Use(metrics.Handler)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	r.registerAuthRoutes(mux)
	r.registerTaskRoutes(mux, authenticate)

	return mux
}

func (r *Router) registerAuthRoutes(mux chi.Router) {
	authHandler := handler.NewAuth(r.authService, r.logger)
	mux.Post("/register", authHandler.Register)
	mux.Post("/login", authHandler.Login)
}

func (r *Router) registerTaskRoutes(mux chi.Router, authenticate *middleware.Authenticate) {
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)
	mux.Route("/tareas", func(tr chi.Router) {
		tr.Use(authenticate.Handler)
		tr.Get("/", taskHandler.List)
		tr.Post("/", taskHandler.Create)
		tr.Put("/{id}", taskHandler.Update)
		tr.Delete("/{id}", taskHandler.Delete)
	})
}
