package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name string
		pred RolePredicate
		role Role
		want bool
	}{
		{"is admin passes admin", Is(RoleAdmin), RoleAdmin, true},
		{"is admin rejects user", Is(RoleAdmin), RoleUser, false},
		{"is not user rejects user", IsNot(RoleUser), RoleUser, false},
		{"is not user passes admin", IsNot(RoleUser), RoleAdmin, true},
		{"is not user passes superadmin", IsNot(RoleUser), RoleSuperAdmin, true},
		{"at least admin rejects user", AtLeast(RoleAdmin), RoleUser, false},
		{"at least admin passes admin", AtLeast(RoleAdmin), RoleAdmin, true},
		{"at least admin passes superadmin", AtLeast(RoleAdmin), RoleSuperAdmin, true},
		{"any of admin or superadmin rejects user", AnyOf(RoleAdmin, RoleSuperAdmin), RoleUser, false},
		{"any of admin or superadmin passes superadmin", AnyOf(RoleAdmin, RoleSuperAdmin), RoleSuperAdmin, true},
		{"empty any of rejects everything", AnyOf(), RoleSuperAdmin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.role))
		})
	}
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "superadmin", RoleSuperAdmin.String())

	r, err := ParseRole("superadmin")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role(-1).Valid())
	assert.False(t, Role(3).Valid())
}
