package authz

// resourceRules maps an application area to the permissions that may open it.
// Any single listed permission suffices. The table is keyed by resource name
// alone; rekey by (resource, action) once two actions on the same resource
// need different permissions.
var resourceRules = map[string][]Permission{
	"employees": {
		PermEmployeesViewAll,
		PermEmployeesViewDepartment,
		PermEmployeesViewTeam,
	},
	"assessments":  {PermAssessmentsConduct},
	"jobprofiles":  {PermJobProfilesManage},
	"organization": {PermOrganizationViewDashboard},
	"reports": {
		PermOrganizationViewDashboard,
		PermEmployeesViewAll,
	},
	"users":       {PermUsersManage},
	"permissions": {PermPermissionsManage},
	"settings":    {PermSystemConfigure},
	"audit":       {PermAuditView},
}

// HasPermission reports whether p holds perm. Nil principals are denied.
func HasPermission(p *Principal, perm Permission) bool {
	return p.HasPermission(perm)
}

// HasAnyPermission reports whether p holds at least one of perms. An empty
// requirement list is never satisfied: callers must state what they require.
func HasAnyPermission(p *Principal, perms []Permission) bool {
	if p == nil || len(perms) == 0 {
		return false
	}
	for _, perm := range perms {
		if p.HasPermission(perm) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether p holds every permission in perms.
func HasAllPermissions(p *Principal, perms []Permission) bool {
	if p == nil || len(perms) == 0 {
		return false
	}
	for _, perm := range perms {
		if !p.HasPermission(perm) {
			return false
		}
	}
	return true
}

// CanAccessResource decides whether p may perform action on the named
// resource. Unknown resources resolve to an empty requirement set and are
// therefore denied; misconfiguration fails closed, never open. The action is
// accepted for forward extensibility and does not affect the lookup.
func CanAccessResource(p *Principal, resource, action string) bool {
	if p == nil {
		return false
	}
	_ = action
	return HasAnyPermission(p, resourceRules[resource])
}

// RequiredPermissions returns a copy of the rule table entry for resource,
// or nil when the resource is unknown.
func RequiredPermissions(resource string) []Permission {
	perms, ok := resourceRules[resource]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
