// Package assessments records skill assessments conducted on employees.
package assessments

import "time"

// Assessment is one assessor's scoring of one employee skill.
type Assessment struct {
	ID            int64     `json:"id"`
	EmployeeEmail string    `json:"employee_email"`
	AssessorEmail string    `json:"assessor_email"`
	SkillName     string    `json:"skill_name"`
	Score         int       `json:"score"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
