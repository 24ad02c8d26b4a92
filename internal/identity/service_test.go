package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/storefront/internal/identity"
)

type mockRepository struct {
	getRoleFunc    func(ctx context.Context, principal string) (identity.Role, error)
	assignRoleFunc func(ctx context.Context, principal string, role identity.Role) error
}

func (m *mockRepository) GetRole(ctx context.Context, principal string) (identity.Role, error) {
	return m.getRoleFunc(ctx, principal)
}

func (m *mockRepository) AssignRole(ctx context.Context, principal string, role identity.Role) error {
	return m.assignRoleFunc(ctx, principal, role)
}

func rolesRepo(roles map[string]identity.Role) *mockRepository {
	return &mockRepository{
		getRoleFunc: func(ctx context.Context, principal string) (identity.Role, error) {
			if role, ok := roles[principal]; ok {
				return role, nil
			}
			return "", identity.ErrRoleNotAssigned
		},
		assignRoleFunc: func(ctx context.Context, principal string, role identity.Role) error {
			roles[principal] = role
			return nil
		},
	}
}

func TestService_GetCallerRole(t *testing.T) {
	repo := rolesRepo(map[string]identity.Role{
		"carol": identity.RoleAdmin,
	})
	svc := identity.NewService(repo, []string{"root"})

	tests := []struct {
		name      string
		principal string
		expected  identity.Role
	}{
		{name: "anonymous_is_guest", principal: "", expected: identity.RoleGuest},
		{name: "bootstrap_admin", principal: "root", expected: identity.RoleAdmin},
		{name: "assigned_role", principal: "carol", expected: identity.RoleAdmin},
		{name: "unassigned_authenticated_is_user", principal: "dave", expected: identity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := svc.GetCallerRole(context.Background(), tt.principal)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestService_IsCallerAdmin(t *testing.T) {
	repo := rolesRepo(map[string]identity.Role{"carol": identity.RoleAdmin})
	svc := identity.NewService(repo, nil)

	isAdmin, err := svc.IsCallerAdmin(context.Background(), "carol")
	assert.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsCallerAdmin(context.Background(), "dave")
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = svc.IsCallerAdmin(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestService_AssignRole(t *testing.T) {
	t.Run("non_admin_rejected", func(t *testing.T) {
		repo := rolesRepo(map[string]identity.Role{})
		svc := identity.NewService(repo, nil)

		err := svc.AssignRole(context.Background(), "dave", "eve", identity.RoleAdmin)

		assert.ErrorIs(t, err, identity.ErrNotAdmin)
	})

	t.Run("admin_assigns_role", func(t *testing.T) {
		roles := map[string]identity.Role{}
		svc := identity.NewService(rolesRepo(roles), []string{"root"})

		err := svc.AssignRole(context.Background(), "root", "eve", identity.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, identity.RoleAdmin, roles["eve"])
	})

	t.Run("unknown_role_rejected", func(t *testing.T) {
		svc := identity.NewService(rolesRepo(map[string]identity.Role{}), []string{"root"})

		err := svc.AssignRole(context.Background(), "root", "eve", "superuser")

		assert.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"admin", "user", "guest"} {
		role, err := identity.ParseRole(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, role.String())
	}

	_, err := identity.ParseRole("superuser")
	assert.Error(t, err)
}
