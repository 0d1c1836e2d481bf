package employees

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

type mockRepo struct {
	byEmail map[string]Employee
	nextID  int64
}

func newMockRepo(seed ...Employee) *mockRepo {
	m := &mockRepo{byEmail: make(map[string]Employee), nextID: 1}
	for _, e := range seed {
		e.ID = m.nextID
		m.nextID++
		m.byEmail[strings.ToLower(e.Email)] = e
	}
	return m
}

func (m *mockRepo) List(ctx context.Context) ([]Employee, error) {
	out := make([]Employee, 0, len(m.byEmail))
	for _, e := range m.byEmail {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepo) ListByDepartment(ctx context.Context, department string) ([]Employee, error) {
	var out []Employee
	for _, e := range m.byEmail {
		if e.Department == department {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	e, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &e, nil
}

func (m *mockRepo) Create(ctx context.Context, e Employee) (*Employee, error) {
	key := strings.ToLower(e.Email)
	if _, exists := m.byEmail[key]; exists {
		return nil, httpx.ErrDuplicate
	}
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	m.byEmail[key] = e
	return &e, nil
}

func (m *mockRepo) UpdateProfile(ctx context.Context, email, name, department string, jobProfileID *int64) (*Employee, error) {
	key := strings.ToLower(email)
	e, ok := m.byEmail[key]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	e.Name = name
	e.Department = department
	e.JobProfileID = jobProfileID
	m.byEmail[key] = e
	return &e, nil
}

func (m *mockRepo) UpdateSkills(ctx context.Context, email string, skills []Skill) (*Employee, error) {
	key := strings.ToLower(email)
	e, ok := m.byEmail[key]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	e.Skills = skills
	m.byEmail[key] = e
	return &e, nil
}

var _ RepositoryPort = (*mockRepo)(nil)

func principalWithRole(t *testing.T, role authz.Role, email, department string) *authz.Principal {
	t.Helper()
	grant, ok := authz.Lookup(role)
	require.True(t, ok)
	return &authz.Principal{
		ID:          1,
		Email:       email,
		Role:        role,
		Department:  department,
		Permissions: grant.Permissions,
		IsActive:    true,
	}
}

func seedRoster() []Employee {
	return []Employee{
		{Email: "alice@example.com", Name: "Alice", Department: "Engineering", IsActive: true},
		{Email: "bob@example.com", Name: "Bob", Department: "Engineering", IsActive: true},
		{Email: "carol@example.com", Name: "Carol", Department: "Sales", IsActive: true},
	}
}

func TestListScopesOrgWideViewer(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	hr := principalWithRole(t, authz.RoleHRManager, "hr@example.com", "People")

	roster, err := svc.List(context.Background(), hr)
	require.NoError(t, err)
	assert.Len(t, roster, 3)
}

func TestListScopesDepartmentViewer(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	dm := principalWithRole(t, authz.RoleDepartmentManager, "dm@example.com", "Engineering")

	roster, err := svc.List(context.Background(), dm)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, e := range roster {
		assert.Equal(t, "Engineering", e.Department)
	}
}

func TestListDeniesPlainEmployee(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	emp := principalWithRole(t, authz.RoleEmployee, "alice@example.com", "Engineering")

	roster, err := svc.List(context.Background(), emp)
	assert.Nil(t, roster)
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestUpdateSkillsSelf(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	emp := principalWithRole(t, authz.RoleEmployee, "alice@example.com", "Engineering")

	updated, err := svc.UpdateSkills(context.Background(), emp, "alice@example.com",
		[]Skill{{Name: "Go", Level: 4}})
	require.NoError(t, err)
	assert.Equal(t, []Skill{{Name: "Go", Level: 4}}, updated.Skills)
}

func TestUpdateSkillsOnOtherRecordDenied(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	emp := principalWithRole(t, authz.RoleEmployee, "alice@example.com", "Engineering")

	_, err := svc.UpdateSkills(context.Background(), emp, "bob@example.com",
		[]Skill{{Name: "Go", Level: 4}})
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestUpdateSkillsWithEditProfilesGrant(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	hr := principalWithRole(t, authz.RoleHRManager, "hr@example.com", "People")

	updated, err := svc.UpdateSkills(context.Background(), hr, "bob@example.com",
		[]Skill{{Name: "SQL", Level: 3}})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
}

func TestUpdateSkillsValidation(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	emp := principalWithRole(t, authz.RoleEmployee, "alice@example.com", "Engineering")

	cases := map[string][]Skill{
		"empty name":      {{Name: "  ", Level: 3}},
		"level too low":   {{Name: "Go", Level: 0}},
		"level too high":  {{Name: "Go", Level: 6}},
		"duplicate skill": {{Name: "Go", Level: 3}, {Name: "go", Level: 4}},
	}
	for name, skills := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateSkills(context.Background(), emp, "alice@example.com", skills)
			assert.ErrorIs(t, err, httpx.ErrValidation)
		})
	}
}

func TestUpdateProfileRequiresGrant(t *testing.T) {
	svc := NewService(newMockRepo(seedRoster()...))
	emp := principalWithRole(t, authz.RoleEmployee, "alice@example.com", "Engineering")

	// Even on their own record: profile fields are HR-managed.
	_, err := svc.UpdateProfile(context.Background(), emp, "alice@example.com", "Alice A.", "Engineering", nil)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	hr := principalWithRole(t, authz.RoleHRManager, "hr@example.com", "People")
	updated, err := svc.UpdateProfile(context.Background(), hr, "alice@example.com", "Alice A.", "Platform", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Name)
	assert.Equal(t, "Platform", updated.Department)
}

func TestCreateNormalizesAndValidates(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Employee{
		Email: "  Dana@Example.COM ", Name: " Dana ", Department: "Sales", IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", created.Email)
	assert.Equal(t, "Dana", created.Name)

	_, err = svc.Create(context.Background(), Employee{Email: "dana@example.com", Name: ""})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Employee{Email: "dana@example.com", Name: "Dana"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}
