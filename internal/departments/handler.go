package departments

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// Handler wires HTTP endpoints for departments and the org dashboard.
type Handler struct {
	logger *slog.Logger
	repo   RepositoryPort
	guard  authz.Guard
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo RepositoryPort, guard authz.Guard) *Handler {
	return &Handler{logger: logger, repo: repo, guard: guard}
}

// MountRoutes registers department routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.guard.Protect(authz.GuardSpec{Resource: "organization", Action: "view"}))
	r.Get("/", h.handleList)
	r.Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.repo.Summaries(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summaries)
}
