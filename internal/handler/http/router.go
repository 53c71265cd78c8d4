package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// TokenAuth verifies optional bearer tokens. Nil disables them.
	TokenAuth    *jwtauth.JWTAuth
	DefaultActor string
	Metrics      *metrics.Metrics
}

type Handlers struct {
	Department DepartmentHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(cfg.TokenAuth, cfg.DefaultActor))

		r.Get("/departments", h.Department.List)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Post("/", h.Employee.Create)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Post("/", h.Attendance.Mark)
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", h.Leave.CreateRequest)
			r.Get("/recent", h.Leave.RecentRequests)
			r.Patch("/{id}/status", h.Leave.UpdateStatus)
		})

		r.Get("/dashboard", h.Dashboard.GetStats)
	})
	return r
}
