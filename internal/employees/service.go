package employees

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

const maxSkillLevel = 5

// Service handles employee profile business logic. Read access is enforced
// at the route guard; write paths are re-checked here because the self
// override applies to reads only and writes need their own permission.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns employee profiles scoped to what the principal may see:
// org-wide viewers get everything, department viewers get their department.
func (s *Service) List(ctx context.Context, principal *authz.Principal) ([]Employee, error) {
	switch {
	case authz.HasPermission(principal, authz.PermEmployeesViewAll):
		return s.repo.List(ctx)
	case authz.HasAnyPermission(principal, []authz.Permission{
		authz.PermEmployeesViewDepartment,
		authz.PermEmployeesViewTeam,
	}):
		return s.repo.ListByDepartment(ctx, principal.Department)
	default:
		return nil, httpx.ErrForbidden
	}
}

// Get fetches a single profile.
func (s *Service) Get(ctx context.Context, email string) (*Employee, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create inserts a new employee profile.
func (s *Service) Create(ctx context.Context, e Employee) (*Employee, error) {
	e.Email = strings.TrimSpace(strings.ToLower(e.Email))
	e.Name = strings.TrimSpace(e.Name)
	if e.Email == "" || e.Name == "" {
		return nil, fmt.Errorf("%w: email and name required", httpx.ErrValidation)
	}
	if err := validateSkills(e.Skills); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, e)
}

// UpdateProfile updates profile fields; requires the edit-profiles grant.
func (s *Service) UpdateProfile(ctx context.Context, principal *authz.Principal, email, name, department string, jobProfileID *int64) (*Employee, error) {
	if !authz.HasPermission(principal, authz.PermEmployeesEditProfiles) {
		return nil, httpx.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", httpx.ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, email, name, department, jobProfileID)
}

// UpdateSkills replaces the skill list. Employees may edit their own skills
// with skills.edit_own; editing someone else's requires
// employees.edit_profiles. Self-access never extends to writes on other
// records.
func (s *Service) UpdateSkills(ctx context.Context, principal *authz.Principal, email string, skills []Skill) (*Employee, error) {
	allowed := false
	if principal.IsSelf(email) && authz.HasPermission(principal, authz.PermSkillsEditOwn) {
		allowed = true
	} else if authz.HasPermission(principal, authz.PermEmployeesEditProfiles) {
		allowed = true
	}
	if !allowed {
		return nil, httpx.ErrForbidden
	}
	if err := validateSkills(skills); err != nil {
		return nil, err
	}
	return s.repo.UpdateSkills(ctx, email, skills)
}

func validateSkills(skills []Skill) error {
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			return fmt.Errorf("%w: skill name required", httpx.ErrValidation)
		}
		if skill.Level < 1 || skill.Level > maxSkillLevel {
			return fmt.Errorf("%w: skill %q level must be 1-%d", httpx.ErrValidation, name, maxSkillLevel)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate skill %q", httpx.ErrValidation, name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
