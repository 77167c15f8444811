package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/db"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Reader is the read capability other components join products through.
type Reader interface {
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// Repository provides PostgreSQL backed access to products.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `id, name, description, price, stock_quantity, created_at, updated_at`

// GetProduct loads one product, returning shared.ErrNotFound when absent.
func (r *Repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
		}
		return Product{}, shared.Dependency("get product", err)
	}
	return p, nil
}

// ListProducts returns every product ordered by id.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, shared.Dependency("list products", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, shared.Dependency("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Dependency("list products", err)
	}
	return products, nil
}

// Seed inserts products when the catalog is empty and reports how many
// rows were written.
func (r *Repository) Seed(ctx context.Context, products []Product) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, p := range products {
			batch.Queue(`INSERT INTO products (name, description, price, stock_quantity) VALUES ($1, $2, $3::numeric, $4)`,
				p.Name, p.Description, p.Price.String(), p.StockQuantity)
		}
		results := tx.SendBatch(ctx, batch)
		for range products {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return err
			}
			inserted++
		}
		return results.Close()
	})
	if err != nil {
		return 0, shared.Dependency("seed products", err)
	}
	return inserted, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	value, err := db.Decimal(price)
	if err != nil {
		return Product{}, err
	}
	p.Price = value
	return p, nil
}
