package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/blackhole-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	reportHandler ReportHandler,
	attendanceHandler AttendanceHandler,
	salaryHandler SalaryHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/reports", func(r chi.Router) {
				r.Post("/process", reportHandler.Process)
				r.Get("/active", reportHandler.Active)
				r.Get("/statistics/extra", reportHandler.ExtraStatistics)
				r.Get("/download", reportHandler.Download)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Put("/days", attendanceHandler.UpsertDay)
				r.Get("/{employeeID}/days", attendanceHandler.ListRecords)
			})

			r.Route("/manual-employees", func(r chi.Router) {
				r.Post("/", attendanceHandler.AddManualEmployee)
				r.Delete("/{employeeID}", attendanceHandler.RemoveManualEmployee)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Put("/rates/{employeeID}", salaryHandler.SetRate)
				r.Post("/confirm", salaryHandler.Confirm)

				r.Route("/confirmed", func(r chi.Router) {
					r.Get("/", salaryHandler.ListConfirmed)
					r.Put("/{index}", salaryHandler.UpdateConfirmed)
					r.Delete("/{index}", salaryHandler.DeleteConfirmed)
				})

				r.Post("/finalize", salaryHandler.Finalize)
				r.Route("/finalized", func(r chi.Router) {
					r.Get("/", salaryHandler.ListFinalized)
					r.Post("/{monthKey}/unfinalize", salaryHandler.Unfinalize)
					r.Delete("/{monthKey}", salaryHandler.DeleteFinalized)
				})

				r.Route("/paid", func(r chi.Router) {
					r.Get("/", salaryHandler.ListPaid)
					r.Put("/{monthKey}", salaryHandler.SetPaid)
				})
			})
		})
	})
	return r
}
