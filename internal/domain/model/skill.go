package model

import (
	"strings"

	"gorm.io/datatypes"
)

// Skill is a self-assessed skill of the portfolio owner.
type Skill struct {
	Record
	SkillName      string                      `json:"skillName" validate:"required"`
	Category       SkillCategory               `json:"category" validate:"required,enum"`
	Proficiency    int                         `json:"proficiency" validate:"min=0,max=100"`
	Tags           datatypes.JSONSlice[string] `json:"tags,omitempty"`
	BadgeIcon      *string                     `json:"badgeIcon,omitempty"`
	ProjectLink    *string                     `json:"projectLink,omitempty"`
	CertificateURL *string                     `json:"certificateUrl,omitempty"`
	Notes          *string                     `json:"notes,omitempty"`
	IsPublic       *bool                       `json:"isPublic,omitempty"`
}

// ApplyDefaults fills schema defaults.
func (s *Skill) ApplyDefaults() {
	if s.Category == "" {
		s.Category = SkillTechnical
	}
}

// Public reports whether the skill is shown on the public portfolio. Skills
// are public unless explicitly hidden.
func (s Skill) Public() bool { return s.IsPublic == nil || *s.IsPublic }

// Certified reports whether a certificate is attached.
func (s Skill) Certified() bool { return s.CertificateURL != nil && *s.CertificateURL != "" }

// HasProject reports whether a project link is attached.
func (s Skill) HasProject() bool { return s.ProjectLink != nil && *s.ProjectLink != "" }

// Level buckets a proficiency value.
type Level string

// Level values.
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelExpert       Level = "Expert"
)

// Levels lists the buckets in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelExpert}

// LevelOf buckets a proficiency: up to 40 beginner, up to 70 intermediate.
func LevelOf(proficiency int) Level {
	switch {
	case proficiency <= 40:
		return LevelBeginner
	case proficiency <= 70:
		return LevelIntermediate
	default:
		return LevelExpert
	}
}

// ParseLevel matches a level name case-insensitively.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Bounds returns the inclusive proficiency range of the level.
func (l Level) Bounds() (lo, hi int) {
	switch l {
	case LevelBeginner:
		return 0, 40
	case LevelIntermediate:
		return 41, 70
	default:
		return 71, 100
	}
}
