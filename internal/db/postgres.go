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
	// KITCHENS
	// -------------------------------
	kitchenTableSQL := `
		CREATE TABLE IF NOT EXISTS kitchens (
			id UUID PRIMARY KEY,
			cook_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			photos JSONB NOT NULL DEFAULT '[]',
			street VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(255) NOT NULL DEFAULT '',
			state VARCHAR(255) NOT NULL DEFAULT '',
			pincode VARCHAR(20) NOT NULL DEFAULT '',
			lng DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			cuisines JSONB NOT NULL DEFAULT '[]',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			fssai_license VARCHAR(100),
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_ratings INT NOT NULL DEFAULT 0,
			total_orders INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, kitchenTableSQL); err != nil {
		return err
	}

	// One active kitchen per cook — the authoritative uniqueness guard;
	// application pre-checks are just a fast path. Geo queries scan the
	// table: no btree can serve the haversine expression.
	kitchenIndexSQL := `
		CREATE UNIQUE INDEX IF NOT EXISTS kitchens_one_per_cook
			ON kitchens (cook_id) WHERE is_active;
	`
	if _, err := db.Exec(ctx, kitchenIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENUS (dishes embedded as a JSONB document)
	// -------------------------------
	// date is a DATE: menus are day-granular, and a plain column keeps the
	// uniqueness index free of timezone-dependent expressions. Repositories
	// normalize timestamps to their calendar day before they reach here.
	menuTableSQL := `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			kitchen_id UUID NOT NULL REFERENCES kitchens(id),
			date DATE NOT NULL,
			dishes JSONB NOT NULL DEFAULT '[]',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, menuTableSQL); err != nil {
		return err
	}

	// One active menu per kitchen per calendar day. Concurrent inserts both
	// passing the application pre-check land here; the 23505 this raises is
	// mapped to Conflict.
	menuIndexSQL := `
		CREATE UNIQUE INDEX IF NOT EXISTS menus_one_per_kitchen_per_day
			ON menus (kitchen_id, date) WHERE is_active;

		CREATE INDEX IF NOT EXISTS menus_date ON menus (date) WHERE is_active;
	`
	if _, err := db.Exec(ctx, menuIndexSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
