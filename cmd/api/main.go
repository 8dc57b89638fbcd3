package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/aggregate"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/config"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/ingestion"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/metrics"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer dbpool.Close()

	store := database.NewPostgresStore(dbpool)
	resultsService := server.NewResultsService(
		ingestion.NewService(store),
		aggregate.NewService(store),
		metrics.New(),
		cfg.MaxImportBytes,
	)

	router := server.SetupRoutes(resultsService)

	log.Printf("Server starting on port %d", cfg.APIPort)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.APIPort), router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
