// Package authz implements the role-based authorization core: the permission
// catalog, the role-permission registry, principal resolution and the
// allow/deny decision functions consumed by every HTTP handler.
package authz

// Permission is an atomic capability token drawn from a closed catalog.
type Permission string

// Platform permissions. Permissions are granted only through role membership,
// never assigned individually.
const (
	PermProfileViewOwn Permission = "profile.view_own"
	PermSkillsEditOwn  Permission = "skills.edit_own"

	PermAssessmentsViewOwn Permission = "assessments.view_own"
	PermAssessmentsConduct Permission = "assessments.conduct"

	PermEmployeesViewAll        Permission = "employees.view_all"
	PermEmployeesViewTeam       Permission = "employees.view_team"
	PermEmployeesViewDepartment Permission = "employees.view_department"
	PermEmployeesEditProfiles   Permission = "employees.edit_profiles"

	PermJobProfilesManage Permission = "jobprofiles.manage"

	PermOrganizationViewDashboard Permission = "organization.view_dashboard"

	PermUsersManage       Permission = "users.manage"
	PermPermissionsManage Permission = "permissions.manage"
	PermSystemConfigure   Permission = "system.configure"
	PermAuditView         Permission = "audit.view"
)

// AllPermissions returns every token in the catalog.
func AllPermissions() []Permission {
	return []Permission{
		PermProfileViewOwn,
		PermSkillsEditOwn,
		PermAssessmentsViewOwn,
		PermAssessmentsConduct,
		PermEmployeesViewAll,
		PermEmployeesViewTeam,
		PermEmployeesViewDepartment,
		PermEmployeesEditProfiles,
		PermJobProfilesManage,
		PermOrganizationViewDashboard,
		PermUsersManage,
		PermPermissionsManage,
		PermSystemConfigure,
		PermAuditView,
	}
}

var catalog = func() map[Permission]struct{} {
	set := make(map[Permission]struct{})
	for _, p := range AllPermissions() {
		set[p] = struct{}{}
	}
	return set
}()

// Valid reports whether p belongs to the catalog.
func (p Permission) Valid() bool {
	_, ok := catalog[p]
	return ok
}

func (p Permission) String() string {
	return string(p)
}
