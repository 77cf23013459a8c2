// Package main initializes and starts the task manager HTTP server,
// wiring configuration, logging, the database, repositories, services,
// and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/taskmanager/api/internal/auth"
	"github.com/taskmanager/api/internal/config"
	"github.com/taskmanager/api/internal/db"
	"github.com/taskmanager/api/internal/logger"
	"github.com/taskmanager/api/internal/repository"
	"github.com/taskmanager/api/internal/server/handler/http"
	"github.com/taskmanager/api/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is required")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and tasks.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	// Initialize the hasher, token service, and business-logic services.
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewTokenService(options.JWTSecret, options.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, zapLogger)
	taskService := service.NewTaskService(taskRepo, tokens, zapLogger)

	// Create HTTP handlers for auth and task endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	taskHandler := &http.TaskHandler{TaskService: taskService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
