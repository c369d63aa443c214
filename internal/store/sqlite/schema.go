package sqlite

import "database/sql"

// ensureSchema creates the storefront tables when they do not exist yet.
// SQLite is the local/dev driver, so schema management stays in-process;
// Postgres schema is owned by deployment migrations.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            category_id   TEXT PRIMARY KEY,
            name          TEXT NOT NULL,
            description   TEXT,
            creation_time TIMESTAMP NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id    TEXT PRIMARY KEY,
            name          TEXT NOT NULL,
            description   TEXT NOT NULL DEFAULT '',
            category_id   TEXT NOT NULL,
            price         REAL NOT NULL,
            image_url     TEXT,
            stock         INTEGER NOT NULL DEFAULT 0,
            sizes         TEXT,
            creation_time TIMESTAMP NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products (lower(name))`,
		`CREATE TABLE IF NOT EXISTS reviews (
            review_id     TEXT PRIMARY KEY,
            product_id    TEXT NOT NULL,
            customer_id   TEXT NOT NULL,
            rating        INTEGER NOT NULL,
            comment       TEXT NOT NULL DEFAULT '',
            creation_time TIMESTAMP NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews (product_id)`,
		`CREATE TABLE IF NOT EXISTS wishlists (
            customer_id   TEXT NOT NULL,
            product_id    TEXT NOT NULL,
            creation_time TIMESTAMP NOT NULL,
            PRIMARY KEY (customer_id, product_id)
        )`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
