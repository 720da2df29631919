package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no product matches the lookup.
var ErrNotFound = errors.New("product not found")

// Repository persists products.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) (Product, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed product repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, description, price, category, images, ingredients, allergens, is_available, created_at, updated_at`

// List returns all products.
func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Get fetches a single product by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, productID)
	return scanProduct(row)
}

// Create inserts a new product.
func (r *PostgresRepository) Create(ctx context.Context, p Product) error {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO products (`+productColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		productID, p.Name, p.Description, p.Price, p.Category, p.Images, p.Ingredients, p.Allergens, p.IsAvailable, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

// Update replaces the stored product.
func (r *PostgresRepository) Update(ctx context.Context, p Product) error {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE products
        SET name = $2, description = $3, price = $4, category = $5, images = $6,
            ingredients = $7, allergens = $8, is_available = $9, updated_at = $10
        WHERE id = $1`,
		productID, p.Name, p.Description, p.Price, p.Category, p.Images, p.Ingredients, p.Allergens, p.IsAvailable, p.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product and returns the removed record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, productID)
	return scanProduct(row)
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		id                   uuid.UUID
		createdAt, updatedAt time.Time
		p                    Product
	)
	err := row.Scan(&id, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images, &p.Ingredients, &p.Allergens, &p.IsAvailable, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	p.ID = id.String()
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
