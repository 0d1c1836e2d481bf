package assessments

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

const maxScore = 5

// Service handles assessment business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Conduct records a new assessment. The assessor is always the current
// principal. Conducting requires the conduct grant regardless of target;
// assessing yourself is not a self-access path.
func (s *Service) Conduct(ctx context.Context, principal *authz.Principal, employeeEmail, skillName string, score int, notes string) (*Assessment, error) {
	if !authz.HasPermission(principal, authz.PermAssessmentsConduct) {
		return nil, httpx.ErrForbidden
	}
	employeeEmail = strings.TrimSpace(strings.ToLower(employeeEmail))
	skillName = strings.TrimSpace(skillName)
	if employeeEmail == "" || skillName == "" {
		return nil, fmt.Errorf("%w: employee email and skill name required", httpx.ErrValidation)
	}
	if score < 1 || score > maxScore {
		return nil, fmt.Errorf("%w: score must be 1-%d", httpx.ErrValidation, maxScore)
	}
	return s.repo.Create(ctx, Assessment{
		EmployeeEmail: employeeEmail,
		AssessorEmail: principal.Email,
		SkillName:     skillName,
		Score:         score,
		Notes:         strings.TrimSpace(notes),
	})
}

// ListForEmployee returns one employee's assessment history. Route guards
// admit assessors and self-access readers; nothing further to check here.
func (s *Service) ListForEmployee(ctx context.Context, email string) ([]Assessment, error) {
	return s.repo.ListForEmployee(ctx, email)
}

// List returns every assessment on record.
func (s *Service) List(ctx context.Context) ([]Assessment, error) {
	return s.repo.List(ctx)
}
