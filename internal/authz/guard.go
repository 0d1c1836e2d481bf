package authz

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// GuardSpec declares what a route requires. Criteria combine with a fixed
// precedence: a resource/action rule is evaluated first and a failure there
// denies immediately, before the self-access override or the permission list
// are consulted. With no resource rule, self-access (when enabled and the
// baseline view-own permission is held) grants before the permission list.
// A spec with no criteria at all leaves the route open.
type GuardSpec struct {
	Resource    string
	Action      string
	Permissions []Permission

	// AllowSelf enables the self-access override for read paths: the request
	// is granted when the principal's email matches the SelfParam URL
	// parameter and the principal holds profile.view_own.
	AllowSelf bool
	SelfParam string
}

// Guard builds authorization middleware for HTTP routes.
type Guard struct {
	Logger *slog.Logger

	// OnDecision, when set, observes every evaluated decision. Used for
	// metrics and the audit trail; it must not block.
	OnDecision func(r *http.Request, p *Principal, allowed bool, rule string)
}

// Protect returns middleware enforcing spec on the wrapped handler.
func (g Guard) Protect(spec GuardSpec) func(http.Handler) http.Handler {
	selfParam := spec.SelfParam
	if selfParam == "" {
		selfParam = "email"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if spec.Resource == "" && len(spec.Permissions) == 0 && !spec.AllowSelf {
				next.ServeHTTP(w, r)
				return
			}

			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				g.observe(r, nil, false, "unauthenticated")
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}

			allowed, rule := g.evaluate(r, principal, spec, selfParam)
			g.observe(r, principal, allowed, rule)
			if !allowed {
				if g.Logger != nil {
					g.Logger.Info("authorization denied",
						slog.String("email", principal.Email),
						slog.String("role", principal.Role.String()),
						slog.String("rule", rule),
						slog.String("path", r.URL.Path))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g Guard) evaluate(r *http.Request, p *Principal, spec GuardSpec, selfParam string) (bool, string) {
	// Resource rules win unconditionally: a failing resource check denies
	// even when self-access would otherwise apply.
	if spec.Resource != "" {
		if CanAccessResource(p, spec.Resource, spec.Action) {
			return true, "resource:" + spec.Resource
		}
		return false, "resource:" + spec.Resource
	}

	if spec.AllowSelf && p.HasPermission(PermProfileViewOwn) {
		if target := strings.TrimSpace(chi.URLParam(r, selfParam)); target != "" && p.IsSelf(target) {
			return true, "self"
		}
	}

	if HasAnyPermission(p, spec.Permissions) {
		return true, "permissions"
	}
	return false, "permissions"
}

func (g Guard) observe(r *http.Request, p *Principal, allowed bool, rule string) {
	if g.OnDecision != nil {
		g.OnDecision(r, p, allowed, rule)
	}
}
