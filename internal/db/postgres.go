package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// OPERATORS
	// -------------------------------
	operatorTableSQL := `
		CREATE TABLE IF NOT EXISTS operators (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'OPERATOR',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, operatorTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// MODEL SNAPSHOTS
	// -------------------------------
	snapshotTableSQL := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id UUID PRIMARY KEY,
			built_at TIMESTAMP NOT NULL,
			order_count INTEGER NOT NULL,
			sample_n INTEGER NOT NULL DEFAULT 0,
			seed BIGINT NOT NULL DEFAULT 0,
			item_count INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, snapshotTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// EVALUATION RUNS
	// -------------------------------
	evaluationTableSQL := `
		CREATE TABLE IF NOT EXISTS evaluations (
			id SERIAL PRIMARY KEY,
			snapshot_id UUID NOT NULL,
			row_count INTEGER NOT NULL,
			recall3 DOUBLE PRECISION NOT NULL,
			precision3 DOUBLE PRECISION NOT NULL,
			top1 DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
		)
	`
	if _, err := db.Exec(ctx, evaluationTableSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
