package store

import (
	"context"
	"log"

	"demandai/database"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS sales_records (
	id SERIAL PRIMARY KEY,
	date DATE NOT NULL,
	product TEXT NOT NULL,
	region TEXT NOT NULL,
	units_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	inventory DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sales_archive (
	id SERIAL PRIMARY KEY,
	archived_at TIMESTAMP NOT NULL,
	date DATE NOT NULL,
	product TEXT NOT NULL,
	region TEXT NOT NULL,
	units_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	inventory DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS notifications (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	notification_type TEXT NOT NULL DEFAULT 'info',
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'admin',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT NOW(),
	updated_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sales_records_date ON sales_records(date);
CREATE INDEX IF NOT EXISTS idx_sales_records_product ON sales_records(product);
CREATE INDEX IF NOT EXISTS idx_sales_archive_batch ON sales_archive(archived_at);
`

// EnsureSchema creates the tables on startup if they do not exist.
func EnsureSchema(ctx context.Context) {
	log.Println("Checking database schema...")
	if _, err := database.GetDB().Exec(ctx, schema); err != nil {
		log.Fatal("Failed to migrate database schema: ", err)
	}
	log.Println("Database schema initialized successfully.")
}
