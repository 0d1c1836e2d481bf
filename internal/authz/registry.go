package authz

import "fmt"

// Role is a named bundle of permissions assigned to a user account.
type Role string

// Platform roles.
const (
	RoleAdmin             Role = "admin"
	RoleHRManager         Role = "hr_manager"
	RoleDepartmentManager Role = "department_manager"
	RoleTeamLead          Role = "team_lead"
	RoleAssessor          Role = "assessor"
	RoleEmployee          Role = "employee"
)

// AllRoles returns every defined role.
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleHRManager,
		RoleDepartmentManager,
		RoleTeamLead,
		RoleAssessor,
		RoleEmployee,
	}
}

// Grant is a role's registry entry: the permissions it confers plus a
// human-readable description.
type Grant struct {
	Description string
	Permissions []Permission
}

// registry is population data, read-only after init. Each role's set is
// enumerated explicitly; the privilege hierarchy between roles is a
// convention maintained here, not enforced algorithmically.
var registry = map[Role]Grant{
	RoleAdmin: {
		Description: "Full platform administration including users, permissions and system configuration.",
		Permissions: AllPermissions(),
	},
	RoleHRManager: {
		Description: "Organization-wide employee, assessment and job profile management.",
		Permissions: []Permission{
			PermProfileViewOwn,
			PermSkillsEditOwn,
			PermAssessmentsViewOwn,
			PermAssessmentsConduct,
			PermEmployeesViewAll,
			PermEmployeesEditProfiles,
			PermJobProfilesManage,
			PermOrganizationViewDashboard,
		},
	},
	RoleDepartmentManager: {
		Description: "Manages assessments and profiles within one department.",
		Permissions: []Permission{
			PermProfileViewOwn,
			PermSkillsEditOwn,
			PermAssessmentsViewOwn,
			PermAssessmentsConduct,
			PermEmployeesViewDepartment,
			PermOrganizationViewDashboard,
		},
	},
	RoleTeamLead: {
		Description: "Conducts assessments and views profiles for the immediate team.",
		Permissions: []Permission{
			PermProfileViewOwn,
			PermSkillsEditOwn,
			PermAssessmentsViewOwn,
			PermAssessmentsConduct,
			PermEmployeesViewTeam,
		},
	},
	RoleAssessor: {
		Description: "Conducts skill assessments for assigned employees.",
		Permissions: []Permission{
			PermProfileViewOwn,
			PermSkillsEditOwn,
			PermAssessmentsViewOwn,
			PermAssessmentsConduct,
		},
	},
	RoleEmployee: {
		Description: "Maintains own profile, skills and assessment history.",
		Permissions: []Permission{
			PermProfileViewOwn,
			PermSkillsEditOwn,
			PermAssessmentsViewOwn,
		},
	},
}

func init() {
	if err := validateRegistry(); err != nil {
		panic(err)
	}
}

// validateRegistry checks the registry against the catalog. Misconfiguration
// is fatal at startup rather than a silent deny at check time.
func validateRegistry() error {
	for _, role := range AllRoles() {
		grant, ok := registry[role]
		if !ok {
			return fmt.Errorf("authz: role %q has no registry entry", role)
		}
		if len(grant.Permissions) == 0 {
			return fmt.Errorf("authz: role %q grants no permissions", role)
		}
		for _, perm := range grant.Permissions {
			if !perm.Valid() {
				return fmt.Errorf("authz: role %q grants unknown permission %q", role, perm)
			}
		}
	}
	for resource, perms := range resourceRules {
		for _, perm := range perms {
			if !perm.Valid() {
				return fmt.Errorf("authz: resource %q requires unknown permission %q", resource, perm)
			}
		}
	}
	return nil
}

// Valid reports whether r is a defined role.
func (r Role) Valid() bool {
	_, ok := registry[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Lookup resolves a role to its registry grant. The returned permission slice
// is a copy; callers may keep it without aliasing the registry. Unknown roles
// fail closed with an empty grant.
func Lookup(role Role) (Grant, bool) {
	grant, ok := registry[role]
	if !ok {
		return Grant{}, false
	}
	perms := make([]Permission, len(grant.Permissions))
	copy(perms, grant.Permissions)
	return Grant{Description: grant.Description, Permissions: perms}, true
}
