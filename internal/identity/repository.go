package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRoleNotAssigned = errors.New("no role assigned to principal")

type Repository interface {
	GetRole(ctx context.Context, principal string) (Role, error)
	AssignRole(ctx context.Context, principal string, role Role) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetRole(ctx context.Context, principal string) (Role, error) {
	query := `
		SELECT role
		FROM user_roles
		WHERE principal = $1
	`

	var role string
	err := r.db.QueryRow(ctx, query, principal).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRoleNotAssigned
		}
		return "", fmt.Errorf("repository: failed to select role for principal: %w", err)
	}

	return Role(role), nil
}

func (r *postgresRepository) AssignRole(ctx context.Context, principal string, role Role) error {
	query := `
		INSERT INTO user_roles (principal, role)
		VALUES ($1, $2)
		ON CONFLICT (principal)
		DO UPDATE SET role = EXCLUDED.role
	`

	_, err := r.db.Exec(ctx, query, principal, string(role))
	if err != nil {
		return fmt.Errorf("repository: failed to assign role: %w", err)
	}

	return nil
}
