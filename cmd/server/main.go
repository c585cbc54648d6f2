package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"workbench/internal/auth"
	"workbench/internal/config"
	"workbench/internal/handler"
	"workbench/internal/middleware"
	"workbench/internal/permissions"
	"workbench/internal/repository/postgres"
	"workbench/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Permission catalog: loaded once, read-only, shared by every handler
	catalog, err := permissions.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to load permission catalog: %v", err)
	}

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	appRepo := postgres.NewAppRepository(repoConfig)
	collabRepo := postgres.NewCollaboratorRepository(repoConfig)
	chatRepo := postgres.NewChatRepository(repoConfig)
	outLinkRepo := postgres.NewOutLinkRepository(repoConfig)
	versionRepo := postgres.NewAppVersionRepository(repoConfig)
	guideRepo := postgres.NewInputGuideRepository(repoConfig)
	directory := postgres.NewMemberDirectory(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	authorizer := service.NewPermissionAuthorizer(appRepo, collabRepo, directory, logger)
	collabService := service.NewCollaboratorService(collabRepo, authorizer, catalog, txManager, logger)
	appService := service.NewAppService(
		appRepo,
		chatRepo,
		outLinkRepo,
		versionRepo,
		guideRepo,
		collabRepo,
		authorizer,
		txManager,
		logger,
	)

	// Create handlers
	appHandler := handler.NewAppHandler(appService, logger)
	collabHandler := handler.NewCollaboratorHandler(collabService, logger)
	memberHandler := handler.NewMemberHandler(directory, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", appHandler.HealthCheck)

	// App routes
	mux.HandleFunc("GET /api/apps", appHandler.ListApps)
	mux.HandleFunc("POST /api/apps", appHandler.CreateApp)
	mux.HandleFunc("GET /api/apps/{id}", appHandler.GetApp)
	mux.HandleFunc("PATCH /api/apps/{id}", appHandler.UpdateApp)
	mux.HandleFunc("DELETE /api/apps/{id}", appHandler.DeleteApp)

	// Collaborator routes
	mux.HandleFunc("GET /api/apps/{id}/collaborators", collabHandler.ListCollaborators)
	mux.HandleFunc("POST /api/apps/{id}/collaborators", collabHandler.UpdateCollaborators)
	mux.HandleFunc("DELETE /api/apps/{id}/collaborators/{principalId}", collabHandler.RemoveCollaborator)

	// Permission label preview for the collaborator picker
	mux.HandleFunc("GET /api/permissions/labels", collabHandler.PermissionLabels)

	// Member directory
	mux.HandleFunc("GET /api/team/members", memberHandler.ListTeamMembers)

	// Build middleware chain; applied in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
