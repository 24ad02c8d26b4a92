// Package profile stores the optional per-identity contact record. It is
// independent of the cart/order flow: checkout takes its CustomerInfo from
// the form, not from here.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrProfileNotFound = errors.New("profile not found")

type Profile struct {
	Name            string `json:"name" db:"name"`
	Email           string `json:"email" db:"email"`
	ShippingAddress string `json:"shipping_address" db:"shipping_address"`
	Phone           string `json:"phone" db:"phone"`
}

type Repository interface {
	Get(ctx context.Context, principal string) (*Profile, error)
	Save(ctx context.Context, principal string, p *Profile) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, principal string) (*Profile, error) {
	query := `
		SELECT name, email, shipping_address, phone
		FROM user_profiles
		WHERE principal = $1
	`

	var p Profile
	err := r.db.QueryRow(ctx, query, principal).Scan(&p.Name, &p.Email, &p.ShippingAddress, &p.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("repository: failed to select profile: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) Save(ctx context.Context, principal string, p *Profile) error {
	query := `
		INSERT INTO user_profiles (principal, name, email, shipping_address, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (principal)
		DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, shipping_address = EXCLUDED.shipping_address, phone = EXCLUDED.phone
	`

	_, err := r.db.Exec(ctx, query, principal, p.Name, p.Email, p.ShippingAddress, p.Phone)
	if err != nil {
		return fmt.Errorf("repository: failed to save profile: %w", err)
	}

	return nil
}

type Service interface {
	GetProfile(ctx context.Context, principal string) (*Profile, error)
	SaveProfile(ctx context.Context, principal string, p *Profile) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, principal string) (*Profile, error) {
	p, err := s.repo.Get(ctx, principal)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}

		log.Error().Err(err).Msg("service: failed to fetch profile in repository")
		return nil, fmt.Errorf("service: failed to fetch profile: %w", err)
	}

	return p, nil
}

func (s *service) SaveProfile(ctx context.Context, principal string, p *Profile) error {
	if err := s.repo.Save(ctx, principal, p); err != nil {
		log.Error().Err(err).Msg("service: failed to save profile in repository")
		return fmt.Errorf("service: failed to save profile: %w", err)
	}

	return nil
}
