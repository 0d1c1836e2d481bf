package jobprofiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// Service handles job profile business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all job profiles.
func (s *Service) List(ctx context.Context) ([]JobProfile, error) {
	return s.repo.List(ctx)
}

// Get fetches one job profile.
func (s *Service) Get(ctx context.Context, id int64) (*JobProfile, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new job profile.
func (s *Service) Create(ctx context.Context, p JobProfile) (*JobProfile, error) {
	if err := validateProfile(&p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update replaces an existing job profile.
func (s *Service) Update(ctx context.Context, p JobProfile) (*JobProfile, error) {
	if err := validateProfile(&p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a job profile.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateProfile(p *JobProfile) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("%w: title required", httpx.ErrValidation)
	}
	for _, req := range p.RequiredSkills {
		if strings.TrimSpace(req.Name) == "" {
			return fmt.Errorf("%w: skill requirement name required", httpx.ErrValidation)
		}
		if req.MinLevel < 1 || req.MinLevel > 5 {
			return fmt.Errorf("%w: skill %q min level must be 1-5", httpx.ErrValidation, req.Name)
		}
	}
	return nil
}
