package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the storefront tables. Deployments run migrations out
// of band; this exists for the testcontainers integration test, which starts
// from an empty database.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            category_id   TEXT PRIMARY KEY,
            name          TEXT NOT NULL,
            description   TEXT,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id    TEXT PRIMARY KEY,
            name          TEXT NOT NULL,
            description   TEXT NOT NULL DEFAULT '',
            category_id   TEXT NOT NULL,
            price         DOUBLE PRECISION NOT NULL,
            image_url     TEXT,
            stock         INTEGER NOT NULL DEFAULT 0,
            sizes         TEXT,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products (lower(name))`,
		`CREATE TABLE IF NOT EXISTS reviews (
            review_id     TEXT PRIMARY KEY,
            product_id    TEXT NOT NULL,
            customer_id   TEXT NOT NULL,
            rating        INTEGER NOT NULL,
            comment       TEXT NOT NULL DEFAULT '',
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews (product_id)`,
		`CREATE TABLE IF NOT EXISTS wishlists (
            customer_id   TEXT NOT NULL,
            product_id    TEXT NOT NULL,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY (customer_id, product_id)
        )`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
