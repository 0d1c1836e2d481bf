package authz

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// RegistryHandler exposes read-only introspection of the permission catalog
// and the role-permission registry. The registry is population data; there
// are no mutating endpoints.
type RegistryHandler struct {
	logger *slog.Logger
	guard  Guard
}

// NewRegistryHandler builds a RegistryHandler instance.
func NewRegistryHandler(logger *slog.Logger, guard Guard) *RegistryHandler {
	return &RegistryHandler{logger: logger, guard: guard}
}

// MountRoutes registers registry introspection routes.
func (h *RegistryHandler) MountRoutes(r chi.Router) {
	r.Use(h.guard.Protect(GuardSpec{Resource: "permissions", Action: "view"}))
	r.Get("/catalog", h.handleCatalog)
	r.Get("/roles", h.handleRoles)
}

func (h *RegistryHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, AllPermissions())
}

type roleGrantView struct {
	Role        Role         `json:"role"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

func (h *RegistryHandler) handleRoles(w http.ResponseWriter, r *http.Request) {
	out := make([]roleGrantView, 0, len(AllRoles()))
	for _, role := range AllRoles() {
		grant, ok := Lookup(role)
		if !ok {
			continue
		}
		out = append(out, roleGrantView{
			Role:        role,
			Description: grant.Description,
			Permissions: grant.Permissions,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}
