package main

import (
	"context"
	"flag"
	"fmt"

	"grantrates-backend/config"
	"grantrates-backend/content"
	"grantrates-backend/dataset"
	"grantrates-backend/logging"
	"grantrates-backend/models"
	"grantrates-backend/repository"
	"grantrates-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	path := flag.String("path", content.DatasetPath, "dataset path inside the content source")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration", "error", err)
	}

	n, err := run(context.Background(), cfg, *path)
	if err != nil {
		logging.Fatal("Import failed", "error", err)
	}
	fmt.Printf("\n✅ Imported %d judges into judge_grant_rates\n", n)
}

func run(ctx context.Context, cfg *config.Config, path string) (int64, error) {
	src, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ds, err := dataset.Load(ctx, src, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load dataset: %w", err)
	}
	cities, judges := ds.Counts()
	logging.Info("Dataset loaded", "source", cfg.Storage.Type, "cities", cities, "judges", judges)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	n, err := repository.NewJudgeRepository(pool).ReplaceAll(ctx, records(ds))
	if err != nil {
		return 0, fmt.Errorf("failed to import dataset: %w", err)
	}
	return n, nil
}

// records flattens the dataset city by city. City groups keep judges whose
// names collide across cities.
func records(ds *dataset.Dataset) []models.JudgeRecord {
	var out []models.JudgeRecord
	for _, city := range ds.AllCities() {
		out = append(out, ds.JudgesInOrder(city)...)
	}
	return out
}
