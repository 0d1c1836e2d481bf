// Package jobprofiles manages the catalog of job profiles and their skill
// requirements.
package jobprofiles

import "time"

// SkillRequirement names a skill and the minimum level a profile expects.
type SkillRequirement struct {
	Name     string `json:"name"`
	MinLevel int    `json:"min_level"`
}

// JobProfile describes a position and its expected competencies.
type JobProfile struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Department     string             `json:"department"`
	RequiredSkills []SkillRequirement `json:"required_skills"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
