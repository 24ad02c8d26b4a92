package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// Repository persists per-principal cart lines. Lines come back in
// insertion order, which is the display order everywhere downstream.
type Repository interface {
	GetItems(ctx context.Context, principal string) ([]Item, error)
	ApplyDelta(ctx context.Context, principal string, productID uint64, size catalog.Size, delta int64) error
	DeleteItem(ctx context.Context, principal string, productID uint64, size catalog.Size) error
	Clear(ctx context.Context, principal string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetItems(ctx context.Context, principal string) ([]Item, error) {
	query := `
		SELECT product_id, size, quantity
		FROM cart_items
		WHERE principal = $1
		ORDER BY added_at, product_id, size
	`

	rows, err := r.db.Query(ctx, query, principal)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items: %w", err)
	}

	return items, nil
}

// ApplyDelta merges a quantity delta into the (principal, productID, size)
// line inside one transaction, so concurrent mutations of the same cart
// serialize instead of overwriting each other. An advisory lock on the
// principal covers the case where the line does not exist yet and there is
// no row for SELECT ... FOR UPDATE to lock.
func (r *postgresRepository) ApplyDelta(ctx context.Context, principal string, productID uint64, size catalog.Size, delta int64) (err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Msg("Panic recovered during cart merge, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Msg("Transaction for cart merge failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Str("principal", principal).Msg("Failed to commit transaction")
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, principal)
	if err != nil {
		return fmt.Errorf("repository: failed to lock cart: %w", err)
	}

	queryLine := `
		SELECT quantity
		FROM cart_items
		WHERE principal = $1 AND product_id = $2 AND size = $3
		FOR UPDATE
	`

	var current []Item
	var quantity uint32
	err = tx.QueryRow(ctx, queryLine, principal, productID, string(size)).Scan(&quantity)
	switch {
	case err == nil:
		current = []Item{{ProductID: productID, Size: size, Quantity: quantity}}
	case errors.Is(err, pgx.ErrNoRows):
		err = nil
	default:
		return fmt.Errorf("repository: failed to select cart item for merge: %w", err)
	}

	merged := FindItem(MergeQuantity(current, productID, size, delta), productID, size)

	switch {
	case merged == nil && len(current) == 0:
		// Decrement on an absent line, nothing to do.
	case merged == nil:
		queryDelete := `
			DELETE FROM cart_items
			WHERE principal = $1 AND product_id = $2 AND size = $3
		`
		if _, err = tx.Exec(ctx, queryDelete, principal, productID, string(size)); err != nil {
			return fmt.Errorf("repository: failed to delete merged-away cart item: %w", err)
		}
	default:
		// The upsert keeps the original added_at, so merged lines keep their
		// place in the cart.
		queryUpsert := `
			INSERT INTO cart_items (principal, product_id, size, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (principal, product_id, size)
			DO UPDATE SET quantity = EXCLUDED.quantity
		`
		if _, err = tx.Exec(ctx, queryUpsert, principal, productID, string(size), merged.Quantity); err != nil {
			return fmt.Errorf("repository: failed to upsert cart item: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) DeleteItem(ctx context.Context, principal string, productID uint64, size catalog.Size) error {
	query := `
		DELETE FROM cart_items
		WHERE principal = $1 AND product_id = $2 AND size = $3
	`

	// Zero rows affected is fine: removing an absent line is a no-op.
	_, err := r.db.Exec(ctx, query, principal, productID, string(size))
	if err != nil {
		return fmt.Errorf("repository: failed to delete cart item: %w", err)
	}

	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, principal string) error {
	query := `
		DELETE FROM cart_items
		WHERE principal = $1
	`

	_, err := r.db.Exec(ctx, query, principal)
	if err != nil {
		return fmt.Errorf("repository: failed to clear cart: %w", err)
	}

	return nil
}
