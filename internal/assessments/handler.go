package assessments

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// Handler wires HTTP endpoints for assessments.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     authz.Guard
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, validator: validator.New()}
}

// MountRoutes registers assessment routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Protect(authz.GuardSpec{Resource: "assessments", Action: "view"})).
		Get("/", h.handleList)
	r.With(h.guard.Protect(authz.GuardSpec{Resource: "assessments", Action: "conduct"})).
		Post("/", h.handleConduct)
	// An employee reads their own history through the self override; the
	// baseline assessments.view_own alone does not open other records.
	r.With(h.guard.Protect(authz.GuardSpec{
		Permissions: []authz.Permission{authz.PermAssessmentsConduct},
		AllowSelf:   true,
	})).Get("/employee/{email}", h.handleListForEmployee)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

type conductRequest struct {
	EmployeeEmail string `json:"employee_email" validate:"required,email"`
	SkillName     string `json:"skill_name" validate:"required"`
	Score         int    `json:"score" validate:"required,min=1,max=5"`
	Notes         string `json:"notes"`
}

func (h *Handler) handleConduct(w http.ResponseWriter, r *http.Request) {
	var req conductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fieldErr := range err.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		httpx.ValidationProblem(w, fields)
		return
	}
	created, err := h.service.Conduct(r.Context(), authz.PrincipalFromContext(r.Context()),
		req.EmployeeEmail, req.SkillName, req.Score, req.Notes)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListForEmployee(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}
