package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrNotAdmin = errors.New("caller is not an admin")

type Service interface {
	// GetCallerRole resolves the caller's role. An empty principal is a
	// guest; an authenticated principal without an assignment is a user.
	GetCallerRole(ctx context.Context, principal string) (Role, error)
	IsCallerAdmin(ctx context.Context, principal string) (bool, error)
	// AssignRole lets an admin set another principal's role.
	AssignRole(ctx context.Context, caller, target string, role Role) error
}

type service struct {
	repo Repository
	// Bootstrap admins from config, so a fresh deployment has someone who
	// can hand out roles.
	bootstrapAdmins map[string]bool
}

func NewService(repo Repository, bootstrapAdmins []string) Service {
	admins := make(map[string]bool, len(bootstrapAdmins))
	for _, p := range bootstrapAdmins {
		admins[p] = true
	}
	return &service{repo: repo, bootstrapAdmins: admins}
}

func (s *service) GetCallerRole(ctx context.Context, principal string) (Role, error) {
	if principal == "" {
		return RoleGuest, nil
	}

	if s.bootstrapAdmins[principal] {
		return RoleAdmin, nil
	}

	role, err := s.repo.GetRole(ctx, principal)
	if err != nil {
		if errors.Is(err, ErrRoleNotAssigned) {
			return RoleUser, nil
		}

		log.Error().Err(err).Msg("service: failed to fetch role in repository")
		return "", fmt.Errorf("service: failed to fetch role: %w", err)
	}

	return role, nil
}

func (s *service) IsCallerAdmin(ctx context.Context, principal string) (bool, error) {
	role, err := s.GetCallerRole(ctx, principal)
	if err != nil {
		return false, err
	}

	return role == RoleAdmin, nil
}

func (s *service) AssignRole(ctx context.Context, caller, target string, role Role) error {
	isAdmin, err := s.IsCallerAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !isAdmin {
		log.Warn().Str("target", target).Stringer("role", role).Msg("service: non-admin attempted role assignment")
		return ErrNotAdmin
	}

	if !validRoles[role] {
		return fmt.Errorf("service: unknown role %q", role)
	}

	if err := s.repo.AssignRole(ctx, target, role); err != nil {
		log.Error().Err(err).Str("target", target).Msg("service: failed to assign role in repository")
		return fmt.Errorf("service: failed to assign role: %w", err)
	}

	log.Info().Str("target", target).Stringer("role", role).Msg("service: role assigned")

	return nil
}
