// Package departments manages the department list and the organization
// dashboard summary.
package departments

import "time"

// Department is an organizational unit.
type Department struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ManagerEmail string    `json:"manager_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary aggregates headcount and assessment coverage per department.
type Summary struct {
	Department    string  `json:"department"`
	Headcount     int     `json:"headcount"`
	AssessedCount int     `json:"assessed_count"`
	AverageScore  float64 `json:"average_score"`
}
