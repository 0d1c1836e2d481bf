package employees

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// Handler wires HTTP endpoints for employee profiles.
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

// MountRoutes registers employee routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.Protect(authz.GuardSpec{Resource: "employees", Action: "view"})).
		Get("/", h.handleList)
	r.With(h.guard.Protect(authz.GuardSpec{Resource: "reports", Action: "export"})).
		Get("/export", h.handleExport)
	r.With(h.guard.Protect(authz.GuardSpec{Permissions: []authz.Permission{authz.PermEmployeesEditProfiles}})).
		Post("/", h.handleCreate)
	r.With(h.guard.Protect(authz.GuardSpec{
		Permissions: []authz.Permission{
			authz.PermEmployeesViewAll,
			authz.PermEmployeesViewDepartment,
			authz.PermEmployeesViewTeam,
		},
		AllowSelf: true,
	})).Get("/{email}", h.handleGet)
	r.With(h.guard.Protect(authz.GuardSpec{Permissions: []authz.Permission{authz.PermEmployeesEditProfiles}})).
		Put("/{email}", h.handleUpdateProfile)
	r.With(h.guard.Protect(authz.GuardSpec{
		Permissions: []authz.Permission{
			authz.PermSkillsEditOwn,
			authz.PermEmployeesEditProfiles,
		},
	})).Put("/{email}/skills", h.handleUpdateSkills)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.List(r.Context(), authz.PrincipalFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, roster)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.List(r.Context(), authz.PrincipalFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
	if err := WriteRosterCSV(w, roster); err != nil {
		h.logger.Error("export roster", slog.Any("error", err))
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

type createRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Name         string  `json:"name" validate:"required"`
	Department   string  `json:"department" validate:"required"`
	JobProfileID *int64  `json:"job_profile_id"`
	Skills       []Skill `json:"skills"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
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
	created, err := h.service.Create(r.Context(), Employee{
		Email:        req.Email,
		Name:         req.Name,
		Department:   req.Department,
		JobProfileID: req.JobProfileID,
		Skills:       req.Skills,
		IsActive:     true,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

type updateProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	Department   string `json:"department" validate:"required"`
	JobProfileID *int64 `json:"job_profile_id"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.UpdateProfile(r.Context(), authz.PrincipalFromContext(r.Context()),
		chi.URLParam(r, "email"), req.Name, req.Department, req.JobProfileID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

type updateSkillsRequest struct {
	Skills []Skill `json:"skills" validate:"required"`
}

func (h *Handler) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	var req updateSkillsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	updated, err := h.service.UpdateSkills(r.Context(), authz.PrincipalFromContext(r.Context()),
		chi.URLParam(r, "email"), req.Skills)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
