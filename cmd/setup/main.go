package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/config"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
)

// One-shot schema bootstrap: creates the test_results and import_records
// tables and their indexes. Safe to re-run.
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
	if err := store.CreateTables(ctx); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("Database setup complete.")
}
