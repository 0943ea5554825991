package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/umairahsan10/crm-backend-go/internal/handler/http/middleware"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/jwt"
)

func NewRouter(
	env string,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	incidentHandler IncidentHandler,
	leaveHandler LeaveHandler,
	correctionHandler CorrectionHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crm-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", attendanceHandler.Checkin)
				r.Post("/checkout", attendanceHandler.Checkout)
				r.Get("/logs", attendanceHandler.Logs)
				r.Get("/summary", attendanceHandler.ListLifetime)
				r.Get("/summary/{employeeID}", attendanceHandler.GetLifetime)
				r.Get("/monthly", attendanceHandler.ListMonthly)
				r.Get("/monthly/{employeeID}", attendanceHandler.GetMonthly)
			})

			r.Route("/incidents", func(r chi.Router) {
				r.Post("/reason", incidentHandler.SubmitReason)
				r.Get("/", incidentHandler.List)
				r.Get("/stats", incidentHandler.Stats)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{incidentID}/decision", incidentHandler.Decide)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/", leaveHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{leaveID}/approve", leaveHandler.Approve)
					r.Post("/{leaveID}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Post("/bulk-mark-present", correctionHandler.BulkMarkPresent)
				r.Post("/auto-absence", correctionHandler.RunAutoAbsence)
				r.Post("/auto-checkout", correctionHandler.RunAutoCheckout)
			})
		})
	})
	return r
}
