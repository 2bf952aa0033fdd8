// cmd/migrate/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/jeorgesilva/lianes-library/internal/config"
	"github.com/jeorgesilva/lianes-library/internal/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.QueryTimeout)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Println("schema applied")
}
