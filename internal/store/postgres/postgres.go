package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New constructs a Postgres store backed directly by database/sql. Schema is
// owned by deployment migrations; see EnsureSchema for tests.
func New(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Products() store.Products     { return &products{db: s.db} }
func (s *pgStore) Categories() store.Categories { return &categories{db: s.db} }
func (s *pgStore) Reviews() store.Reviews       { return &reviews{db: s.db} }
func (s *pgStore) Wishlists() store.Wishlists   { return &wishlists{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Products ---

type products struct{ db *sql.DB }

func (p *products) Create(ctx context.Context, m *model.Product) (*model.Product, error) {
	id := m.ProductID
	if id == "" {
		id = uuid.New().String()
	}
	sizes, err := marshalSizes(m.Sizes)
	if err != nil {
		return nil, err
	}
	var created time.Time
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO products (product_id, name, description, category_id, price, image_url, stock, sizes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING creation_time
    `, id, m.Name, m.Description, m.CategoryID, m.Price, m.ImageURL, m.Stock, sizes)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ProductID = id
	out.CreationTime = created
	return &out, nil
}

func (p *products) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	row := p.db.QueryRowContext(ctx, `
        SELECT product_id, name, description, category_id, price, image_url, stock, sizes, creation_time
        FROM products WHERE product_id=$1
    `, productID)
	return scanProduct(row)
}

func (p *products) List(ctx context.Context) ([]*model.Product, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT product_id, name, description, category_id, price, image_url, stock, sizes, creation_time
        FROM products ORDER BY creation_time DESC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Product
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *products) ListNameRange(ctx context.Context, lo, hi string, limit int) ([]*model.Suggestion, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT product_id, name, category_id
        FROM products
        WHERE lower(name) >= $1 AND lower(name) < $2
        ORDER BY lower(name) ASC
        LIMIT $3
    `, lo, hi, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ProductID, &s.Name, &s.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (p *products) Update(ctx context.Context, m *model.Product) (*model.Product, error) {
	sizes, err := marshalSizes(m.Sizes)
	if err != nil {
		return nil, err
	}
	res, err := p.db.ExecContext(ctx, `
        UPDATE products SET name=$1, description=$2, category_id=$3, price=$4, stock=$5, sizes=$6
        WHERE product_id=$7
    `, m.Name, m.Description, m.CategoryID, m.Price, m.Stock, sizes, m.ProductID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.GetByID(ctx, m.ProductID)
}

func (p *products) SetImageURL(ctx context.Context, productID, url string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE products SET image_url=$1 WHERE product_id=$2`, url, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (p *products) Delete(ctx context.Context, productID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM products WHERE product_id=$1`, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Categories ---

type categories struct{ db *sql.DB }

func (c *categories) Create(ctx context.Context, m *model.Category) (*model.Category, error) {
	id := m.CategoryID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := c.db.QueryRowContext(ctx, `
        INSERT INTO categories (category_id, name, description) VALUES ($1,$2,$3)
        RETURNING creation_time
    `, id, m.Name, m.Description)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.CategoryID = id
	out.CreationTime = created
	return &out, nil
}

func (c *categories) GetByID(ctx context.Context, categoryID string) (*model.Category, error) {
	var out model.Category
	row := c.db.QueryRowContext(ctx, `
        SELECT category_id, name, description, creation_time FROM categories WHERE category_id=$1
    `, categoryID)
	if err := row.Scan(&out.CategoryID, &out.Name, &out.Description, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (c *categories) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT category_id, name, description, creation_time FROM categories ORDER BY name ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Category
	for rows.Next() {
		var m model.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Description, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (c *categories) Delete(ctx context.Context, categoryID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id=$1`, categoryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Reviews ---

type reviews struct{ db *sql.DB }

func (r *reviews) Create(ctx context.Context, m *model.Review) (*model.Review, error) {
	id := m.ReviewID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO reviews (review_id, product_id, customer_id, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, id, m.ProductID, m.CustomerID, m.Rating, m.Comment)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ReviewID = id
	out.CreationTime = created
	return &out, nil
}

func (r *reviews) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT review_id, product_id, customer_id, rating, comment, creation_time
        FROM reviews WHERE product_id=$1 ORDER BY creation_time DESC
    `, productID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Review
	for rows.Next() {
		var m model.Review
		if err := rows.Scan(&m.ReviewID, &m.ProductID, &m.CustomerID, &m.Rating, &m.Comment, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *reviews) Delete(ctx context.Context, reviewID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE review_id=$1`, reviewID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Wishlists ---

type wishlists struct{ db *sql.DB }

func (w *wishlists) Add(ctx context.Context, item *model.WishlistItem) error {
	_, err := w.db.ExecContext(ctx, `
        INSERT INTO wishlists (customer_id, product_id) VALUES ($1,$2)
        ON CONFLICT (customer_id, product_id) DO NOTHING
    `, item.CustomerID, item.ProductID)
	return err
}

func (w *wishlists) Remove(ctx context.Context, customerID, productID string) error {
	res, err := w.db.ExecContext(ctx, `
        DELETE FROM wishlists WHERE customer_id=$1 AND product_id=$2
    `, customerID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (w *wishlists) List(ctx context.Context, customerID string) ([]*model.WishlistItem, error) {
	rows, err := w.db.QueryContext(ctx, `
        SELECT customer_id, product_id, creation_time FROM wishlists
        WHERE customer_id=$1 ORDER BY creation_time DESC
    `, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.WishlistItem
	for rows.Next() {
		var m model.WishlistItem
		if err := rows.Scan(&m.CustomerID, &m.ProductID, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var m model.Product
	var sizes sql.NullString
	err := row.Scan(&m.ProductID, &m.Name, &m.Description, &m.CategoryID, &m.Price, &m.ImageURL, &m.Stock, &sizes, &m.CreationTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if sizes.Valid && sizes.String != "" {
		if err := json.Unmarshal([]byte(sizes.String), &m.Sizes); err != nil {
			return nil, fmt.Errorf("decode sizes for %s: %w", m.ProductID, err)
		}
	}
	return &m, nil
}

func marshalSizes(sizes []string) (any, error) {
	if len(sizes) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(sizes)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
