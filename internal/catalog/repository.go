package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uint64) (*Product, error)
	GetByCategory(ctx context.Context, category Category) ([]Product, error)
	Create(ctx context.Context, product *Product) (uint64, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var sizes []string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &sizes, &p.Category, &p.Image, &p.Price)
	if err != nil {
		return nil, err
	}
	p.Sizes = make([]Size, 0, len(sizes))
	for _, s := range sizes {
		p.Sizes = append(p.Sizes, Size(s))
	}
	return &p, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, description, sizes, category, image, price
		FROM products
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uint64) (*Product, error) {
	query := `
		SELECT id, name, description, sizes, category, image, price
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product by id %d: %w", id, err)
	}

	return p, nil
}

func (r *postgresRepository) GetByCategory(ctx context.Context, category Category) ([]Product, error) {
	query := `
		SELECT id, name, description, sizes, category, image, price
		FROM products
		WHERE category = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products by category %s: %w", category, err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products by category %s: %w", category, err)
	}

	return products, nil
}

func (r *postgresRepository) Create(ctx context.Context, product *Product) (uint64, error) {
	query := `
		INSERT INTO products (name, description, sizes, category, image, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	sizes := make([]string, 0, len(product.Sizes))
	for _, s := range product.Sizes {
		sizes = append(sizes, string(s))
	}

	var id uint64
	err := r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		sizes,
		string(product.Category),
		product.Image,
		product.Price,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert product: %w", err)
	}

	product.ID = id

	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, sizes = $3, category = $4, image = $5, price = $6
		WHERE id = $7
	`

	sizes := make([]string, 0, len(product.Sizes))
	for _, s := range product.Sizes {
		sizes = append(sizes, string(s))
	}

	cmdTag, err := r.db.Exec(ctx, query,
		product.Name,
		product.Description,
		sizes,
		string(product.Category),
		product.Image,
		product.Price,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update product %d: %w", product.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uint64) error {
	query := `
		DELETE FROM products
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
