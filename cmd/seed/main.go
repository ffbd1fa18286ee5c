package main

import (
	"context"
	"log"
	"os"

	"kleanly/internal/config"
	"kleanly/internal/db"
	catalogrepo "kleanly/internal/repository/catalog"
	"kleanly/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := catalogrepo.NewPostgres(pool)
	if err := seed.Apply(ctx, repo); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("catalog seeded")
}
