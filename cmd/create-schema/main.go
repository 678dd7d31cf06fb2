package main

import (
	"context"
	"fmt"

	"grantrates-backend/config"
	"grantrates-backend/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration", "error", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err)
	}
	defer pool.Close()

	// Drop table if exists; the table only mirrors the bundled dataset
	_, err = pool.Exec(ctx, "DROP TABLE IF EXISTS judge_grant_rates CASCADE")
	if err != nil {
		logging.Fatal("Failed to drop table", "error", err)
	}
	logging.Info("✓ Dropped existing judge_grant_rates table (if any)")

	schemaSQL := `
CREATE TABLE judge_grant_rates (
    id SERIAL PRIMARY KEY,

    -- document order of the imported dataset
    position INTEGER NOT NULL,

    city TEXT NOT NULL,
    judge_name TEXT NOT NULL,

    -- percentages in [0, 100]; never validated to sum to 100
    denied_percentage DOUBLE PRECISION,
    granted_asylum_percentage DOUBLE PRECISION,
    granted_other_relief_percentage DOUBLE PRECISION,
    total_decisions INTEGER CHECK (total_decisions >= 0),

    imported_at TIMESTAMP DEFAULT NOW(),

    CONSTRAINT judge_city_unique UNIQUE (city, judge_name)
);`

	_, err = pool.Exec(ctx, schemaSQL)
	if err != nil {
		logging.Fatal("Failed to create judge_grant_rates table", "error", err)
	}
	logging.Info("✓ Created judge_grant_rates table")

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "Import order",
			sql:  "CREATE INDEX idx_judge_position ON judge_grant_rates(position);",
		},
		{
			name: "City filtering",
			sql:  "CREATE INDEX idx_judge_city ON judge_grant_rates(city);",
		},
		{
			name: "Case-insensitive judge lookup",
			sql:  "CREATE INDEX idx_judge_name_lower ON judge_grant_rates(LOWER(judge_name));",
		},
	}

	for _, idx := range indexes {
		_, err = pool.Exec(ctx, idx.sql)
		if err != nil {
			logging.Warn("Failed to create index", "index", idx.name, "error", err)
		} else {
			logging.Info("✓ Created index", "index", idx.name)
		}
	}

	fmt.Println("\n✅ Database schema created successfully!")
	fmt.Println("   Table: judge_grant_rates")
	fmt.Printf("   Indexes: %d indexes created\n", len(indexes))
}
