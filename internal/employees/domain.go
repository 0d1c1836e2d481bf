// Package employees manages employee profiles and their tracked skills.
package employees

import "time"

// Skill is a single tracked competency on an employee profile.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Employee represents an employee profile.
type Employee struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Department   string     `json:"department"`
	JobProfileID *int64     `json:"job_profile_id,omitempty"`
	Skills       []Skill    `json:"skills"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
