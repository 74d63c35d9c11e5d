package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/blackhole-hr/attendance-backend-go/internal/config"
	domainWorkspace "github.com/blackhole-hr/attendance-backend-go/internal/domain/workspace"
	appHTTP "github.com/blackhole-hr/attendance-backend-go/internal/handler/http"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/database"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/blackhole-hr/attendance-backend-go/internal/repository/memory"
	"github.com/blackhole-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/blackhole-hr/attendance-backend-go/internal/service/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/service/processor"
	salaryService "github.com/blackhole-hr/attendance-backend-go/internal/service/salary"
	workspaceService "github.com/blackhole-hr/attendance-backend-go/internal/service/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	}))

	var workspaceRepo domainWorkspace.Repository
	switch cfg.Store.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			os.Exit(1)
		}
		defer db.Close()
		workspaceRepo = postgresql.NewWorkspaceRepository(db)
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		workspaceRepo = memory.NewWorkspaceRepository()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	manager := workspaceService.NewManager(workspaceRepo, logger, cfg.Store.Timeout)

	attendanceSvc := attendanceService.NewAttendanceService(manager, logger)
	salarySvc := salaryService.NewSalaryService(manager, logger)
	proc := processor.NewProcessor(logger)

	reportHandler := appHTTP.NewReportHandler(attendanceSvc, proc, cfg.App.ExportDir)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)

	router := appHTTP.NewRouter(
		JWTService,
		reportHandler,
		attendanceHandler,
		salaryHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
