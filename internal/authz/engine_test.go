package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrincipal(t *testing.T, role Role, email string) *Principal {
	t.Helper()
	grant, ok := Lookup(role)
	require.True(t, ok)
	return &Principal{
		ID:          1,
		Email:       email,
		Name:        "Test User",
		Role:        role,
		Department:  "Engineering",
		Permissions: grant.Permissions,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestHasPermissionMatchesMembership(t *testing.T) {
	p := newPrincipal(t, RoleEmployee, "emp@example.com")
	for _, perm := range AllPermissions() {
		want := false
		for _, held := range p.Permissions {
			if held == perm {
				want = true
				break
			}
		}
		assert.Equal(t, want, HasPermission(p, perm), "permission %s", perm)
	}
}

func TestHasPermissionNilPrincipal(t *testing.T) {
	assert.False(t, HasPermission(nil, PermProfileViewOwn))
}

func TestHasAnyPermissionEmptyListAlwaysFalse(t *testing.T) {
	admin := newPrincipal(t, RoleAdmin, "admin@example.com")
	assert.False(t, HasAnyPermission(admin, nil))
	assert.False(t, HasAnyPermission(admin, []Permission{}))
	assert.False(t, HasAnyPermission(nil, []Permission{}))
}

func TestHasAnyPermission(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	assert.True(t, HasAnyPermission(emp, []Permission{PermUsersManage, PermProfileViewOwn}))
	assert.False(t, HasAnyPermission(emp, []Permission{PermUsersManage}))
}

func TestCanAccessResourceUnknownResourceDenied(t *testing.T) {
	admin := newPrincipal(t, RoleAdmin, "admin@example.com")
	assert.False(t, CanAccessResource(admin, "unknown-resource-xyz", "view"))
}

func TestCanAccessResourceNilPrincipal(t *testing.T) {
	assert.False(t, CanAccessResource(nil, "employees", "view"))
}

func TestAdminScenario(t *testing.T) {
	admin := newPrincipal(t, RoleAdmin, "admin@example.com")
	assert.True(t, HasPermission(admin, PermSystemConfigure))
	assert.True(t, CanAccessResource(admin, "employees", "view"))
	assert.True(t, CanAccessResource(admin, "audit", "view"))
}

func TestEmployeeScenario(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	assert.False(t, CanAccessResource(emp, "organization", "view"))
	assert.False(t, CanAccessResource(emp, "users", "view"))
	assert.False(t, HasAnyPermission(emp, []Permission{PermUsersManage}))
	assert.True(t, HasPermission(emp, PermProfileViewOwn))
}

func TestDepartmentManagerOpensEmployees(t *testing.T) {
	dm := newPrincipal(t, RoleDepartmentManager, "dm@example.com")
	assert.True(t, CanAccessResource(dm, "employees", "view"))
	assert.False(t, CanAccessResource(dm, "users", "manage"))
}

func TestIsSelf(t *testing.T) {
	p := newPrincipal(t, RoleEmployee, "emp@example.com")
	assert.True(t, p.IsSelf("emp@example.com"))
	assert.True(t, p.IsSelf("EMP@Example.COM"))
	assert.False(t, p.IsSelf("other@example.com"))
	assert.False(t, p.IsSelf(""))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.IsSelf("emp@example.com"))
}

func TestRequiredPermissionsReturnsCopy(t *testing.T) {
	perms := RequiredPermissions("employees")
	require.NotEmpty(t, perms)
	perms[0] = Permission("tampered")
	assert.NotContains(t, RequiredPermissions("employees"), Permission("tampered"))

	assert.Nil(t, RequiredPermissions("unknown-resource-xyz"))
}
