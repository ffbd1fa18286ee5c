package main

import (
	"context"
	"flag"
	"log"
	"os"

	"kleanly/internal/config"
	"kleanly/internal/db"
	"kleanly/internal/importer"
	catalogrepo "kleanly/internal/repository/catalog"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	path := flag.String("file", "", "price-list CSV to import")
	flag.Parse()
	if *path == "" {
		logger.Fatal("usage: importer -file prices.csv")
	}

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := catalogrepo.NewPostgres(pool)
	imported, err := importer.NewCSVImporter(f, repo).Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}

	logger.Printf("imported %d catalog entries", imported)
}
