package main

import (
	"fmt"
	"log"

	"gemtrove/internal/config"
	"gemtrove/internal/handler"
	"gemtrove/internal/repository/postgres"
	"gemtrove/internal/router"
	"gemtrove/internal/service"
	b2storage "gemtrove/internal/storage/b2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	adminRepo := postgres.NewAdminRepo(db)
	gemRepo := postgres.NewGemRepo(db)
	subRepo := postgres.NewSubmissionRepo(db)

	// Initialize object store client
	store, err := b2storage.NewClient(&cfg.B2)
	if err != nil {
		return fmt.Errorf("failed to initialize object store client: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(adminRepo, cfg.JWT)
	mediaSvc := service.NewMediaService(store, &cfg.B2)
	gemSvc := service.NewGemService(gemRepo, mediaSvc)
	subSvc := service.NewSubmissionService(subRepo, gemSvc)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	gemH := handler.NewGemHandler(gemSvc)
	subH := handler.NewSubmissionHandler(subSvc)
	mediaH := handler.NewMediaHandler(mediaSvc)
	healthH := handler.NewHealthHandler(db, mediaSvc)

	corsOrigins := []string{
		"http://localhost:3000", "http://127.0.0.1:3000",
		"http://localhost:3001", "http://127.0.0.1:3001",
	}

	// Setup router
	r := router.Setup(authSvc, authH, gemH, subH, mediaH, healthH, corsOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
