package main

import (
	"context"
	"log"

	"github.com/tripfolio/tripfolio-backend-go/internal/api"
	"github.com/tripfolio/tripfolio-backend-go/internal/config"
	"github.com/tripfolio/tripfolio-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	services := api.BuildServices(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	services.Backup.Start(ctx)

	router := api.SetupRouter(cfg, services)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
