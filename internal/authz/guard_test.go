package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// guardedRouter mounts a probe route behind the given spec, with the
// principal (possibly nil) injected the way the session middleware would.
func guardedRouter(spec GuardSpec, principal *Principal) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if principal != nil {
				req = req.WithContext(ContextWithPrincipal(req.Context(), principal))
			}
			next.ServeHTTP(w, req)
		})
	})
	guard := Guard{}
	r.With(guard.Protect(spec)).Get("/records/{email}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func probe(t *testing.T, h http.Handler, path string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res.Code
}

func TestGuardUnauthenticated(t *testing.T) {
	h := guardedRouter(GuardSpec{Permissions: []Permission{PermProfileViewOwn}}, nil)
	assert.Equal(t, http.StatusUnauthorized, probe(t, h, "/records/any@example.com"))
}

func TestGuardOpenRouteNeedsNoPrincipal(t *testing.T) {
	h := guardedRouter(GuardSpec{}, nil)
	assert.Equal(t, http.StatusOK, probe(t, h, "/records/any@example.com"))
}

func TestGuardResourceAllow(t *testing.T) {
	admin := newPrincipal(t, RoleAdmin, "admin@example.com")
	h := guardedRouter(GuardSpec{Resource: "employees", Action: "view"}, admin)
	assert.Equal(t, http.StatusOK, probe(t, h, "/records/other@example.com"))
}

func TestGuardResourceDeny(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	h := guardedRouter(GuardSpec{Resource: "employees", Action: "view"}, emp)
	assert.Equal(t, http.StatusForbidden, probe(t, h, "/records/other@example.com"))
}

func TestGuardPermissionList(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")

	h := guardedRouter(GuardSpec{Permissions: []Permission{PermSkillsEditOwn}}, emp)
	assert.Equal(t, http.StatusOK, probe(t, h, "/records/other@example.com"))

	h = guardedRouter(GuardSpec{Permissions: []Permission{PermUsersManage}}, emp)
	assert.Equal(t, http.StatusForbidden, probe(t, h, "/records/other@example.com"))
}

func TestGuardSelfAccessOverride(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	// The employee lacks assessments.conduct; the self match grants anyway.
	h := guardedRouter(GuardSpec{
		Permissions: []Permission{PermAssessmentsConduct},
		AllowSelf:   true,
	}, emp)
	assert.Equal(t, http.StatusOK, probe(t, h, "/records/emp@example.com"))
	assert.Equal(t, http.StatusForbidden, probe(t, h, "/records/other@example.com"))
}

func TestGuardSelfAccessRequiresBaseline(t *testing.T) {
	// A principal stripped of profile.view_own must not benefit from the
	// self override.
	p := newPrincipal(t, RoleEmployee, "emp@example.com")
	stripped := make([]Permission, 0, len(p.Permissions))
	for _, perm := range p.Permissions {
		if perm != PermProfileViewOwn {
			stripped = append(stripped, perm)
		}
	}
	p.Permissions = stripped

	h := guardedRouter(GuardSpec{
		Permissions: []Permission{PermAssessmentsConduct},
		AllowSelf:   true,
	}, p)
	assert.Equal(t, http.StatusForbidden, probe(t, h, "/records/emp@example.com"))
}

// A failing resource rule denies before the self override or the permission
// list are consulted, even when both would grant. Pins the precedence order.
func TestGuardResourceRuleWinsOverSelfAccess(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	h := guardedRouter(GuardSpec{
		Resource:    "users",
		Action:      "view",
		Permissions: []Permission{PermProfileViewOwn},
		AllowSelf:   true,
	}, emp)
	assert.Equal(t, http.StatusForbidden, probe(t, h, "/records/emp@example.com"))
}

func TestGuardObserverSeesDecision(t *testing.T) {
	emp := newPrincipal(t, RoleEmployee, "emp@example.com")
	var gotRule string
	var gotAllowed bool
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(ContextWithPrincipal(req.Context(), emp)))
		})
	})
	guard := Guard{OnDecision: func(req *http.Request, p *Principal, allowed bool, rule string) {
		gotRule = rule
		gotAllowed = allowed
	}}
	r.With(guard.Protect(GuardSpec{Resource: "audit", Action: "view"})).
		Get("/audit", func(w http.ResponseWriter, req *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/audit", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "resource:audit", gotRule)
	assert.False(t, gotAllowed)
}
