package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, order *Order) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*Order, error)
	ListByPrincipal(ctx context.Context, principal string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, orderInput *Order) (orderID uint64, err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Msg("Panic recovered during order create, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Msg("Transaction for order create failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Uint64("order_id", orderID).Msg("Failed to commit transaction")
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	createdAt := time.Now().UTC()

	queryOrder := `
		INSERT INTO orders (principal, customer_name, customer_email, customer_shipping_address, customer_phone, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRow(ctx, queryOrder,
		orderInput.Principal,
		orderInput.Customer.Name,
		orderInput.Customer.Email,
		orderInput.Customer.ShippingAddress,
		orderInput.Customer.Phone,
		orderInput.TotalAmount,
		createdAt,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	orderInput.ID = orderID
	orderInput.CreatedAt = createdAt

	queryItem := `
		INSERT INTO order_items (order_id, position, product_id, size, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, item := range orderInput.Items {
		_, err = tx.Exec(ctx, queryItem,
			orderID,
			i,
			item.ProductID,
			string(item.Size),
			item.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("repository: failed to insert order item for order %d: %w", orderID, err)
		}
	}

	return orderID, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uint64) (*Order, error) {
	queryOrder := `
		SELECT id, principal, customer_name, customer_email, customer_shipping_address, customer_phone, total_amount, created_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	err := r.db.QueryRow(ctx, queryOrder, id).Scan(
		&o.ID,
		&o.Principal,
		&o.Customer.Name,
		&o.Customer.Email,
		&o.Customer.ShippingAddress,
		&o.Customer.Phone,
		&o.TotalAmount,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %d: %w", id, err)
	}

	queryItems := `
		SELECT product_id, size, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, queryItems, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order id %d: %w", id, err)
	}
	defer rows.Close()

	items := make([]cart.Item, 0)
	for rows.Next() {
		var item cart.Item
		if err := rows.Scan(&item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order id %d: %w", id, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order id %d: %w", id, err)
	}

	o.Items = items

	return &o, nil
}

func (r *postgresRepository) ListByPrincipal(ctx context.Context, principal string) ([]Order, error) {
	query := `
		SELECT id, principal, customer_name, customer_email, customer_shipping_address, customer_phone, total_amount, created_at
		FROM orders
		WHERE principal = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, principal)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	query := `
		SELECT id, principal, customer_name, customer_email, customer_shipping_address, customer_phone, total_amount, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	return r.list(ctx, query)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	orderRows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer orderRows.Close()

	ordersMap := make(map[uint64]*Order)
	var orderIDs []int64

	for orderRows.Next() {
		var o Order
		err := orderRows.Scan(
			&o.ID,
			&o.Principal,
			&o.Customer.Name,
			&o.Customer.Email,
			&o.Customer.ShippingAddress,
			&o.Customer.Phone,
			&o.TotalAmount,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		o.Items = make([]cart.Item, 0)
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, int64(o.ID))
	}

	if err = orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	queryItems := `
		SELECT order_id, product_id, size, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	itemRows, err := r.db.Query(ctx, queryItems, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uint64
		var item cart.Item
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}

		if o, ok := ordersMap[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	result := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		if o, ok := ordersMap[uint64(id)]; ok {
			result = append(result, *o)
		}
	}

	return result, nil
}
