package stats

import (
	"cmp"
	"slices"

	"github.com/okian/skillport/internal/domain/model"
)

// Skill view limits.
const (
	TopSkills          = 5
	PortfolioTopSkills = 6
	AttentionThreshold = 50
	ExpertThreshold    = 80
)

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Category model.SkillCategory `json:"category"`
	Count    int                 `json:"count"`
	Percent  int                 `json:"percent"`
}

// LevelShare is one slice of the proficiency distribution.
type LevelShare struct {
	Level   model.Level `json:"level"`
	Count   int         `json:"count"`
	Percent int         `json:"percent"`
}

// SkillReport is the skill analytics dashboard.
type SkillReport struct {
	Total              int             `json:"total"`
	AverageProficiency int             `json:"averageProficiency"`
	Certified          int             `json:"certified"`
	WithProjects       int             `json:"withProjects"`
	Categories         []CategoryShare `json:"categories"`
	Levels             []LevelShare    `json:"levels"`
	Top                []model.Skill   `json:"top"`
	NeedsAttention     []model.Skill   `json:"needsAttention"`
}

// SkillAnalytics computes the skill dashboard.
func SkillAnalytics(skills []model.Skill) SkillReport {
	r := SkillReport{
		Total:              len(skills),
		AverageProficiency: averageProficiency(skills),
		Categories:         Categories(skills),
		Top:                topByProficiency(skills, TopSkills),
		NeedsAttention:     make([]model.Skill, 0),
	}

	levels := make(map[model.Level]int, len(model.Levels))
	for _, s := range skills {
		levels[model.LevelOf(s.Proficiency)]++
		if s.Certified() {
			r.Certified++
		}
		if s.HasProject() {
			r.WithProjects++
		}
		if s.Proficiency < AttentionThreshold || (!s.Certified() && !s.HasProject()) {
			r.NeedsAttention = append(r.NeedsAttention, s)
		}
	}
	r.Levels = make([]LevelShare, 0, len(model.Levels))
	for _, l := range model.Levels {
		r.Levels = append(r.Levels, LevelShare{Level: l, Count: levels[l], Percent: Percent(levels[l], len(skills))})
	}
	return r
}

// Categories returns the category distribution, largest first and then by
// category name.
func Categories(skills []model.Skill) []CategoryShare {
	counts := make(map[model.SkillCategory]int)
	for _, s := range skills {
		counts[s.Category]++
	}
	out := make([]CategoryShare, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryShare{Category: c, Count: n, Percent: Percent(n, len(skills))})
	}
	slices.SortFunc(out, func(a, b CategoryShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

// Portfolio is the public portfolio summary.
type Portfolio struct {
	Total              int             `json:"total"`
	Expert             int             `json:"expert"`
	Certified          int             `json:"certified"`
	AverageProficiency int             `json:"averageProficiency"`
	Categories         []CategoryShare `json:"categories"`
	Top                []model.Skill   `json:"top"`
}

// PortfolioSummary summarises the given skills. Callers pass only the skills
// that are visible to the audience.
func PortfolioSummary(skills []model.Skill) Portfolio {
	p := Portfolio{
		Total:              len(skills),
		AverageProficiency: averageProficiency(skills),
		Categories:         Categories(skills),
		Top:                topByProficiency(skills, PortfolioTopSkills),
	}
	for _, s := range skills {
		if s.Proficiency >= ExpertThreshold {
			p.Expert++
		}
		if s.Certified() {
			p.Certified++
		}
	}
	return p
}

func averageProficiency(skills []model.Skill) int {
	var sum float64
	for _, s := range skills {
		sum += float64(s.Proficiency)
	}
	return roundDiv(sum, len(skills))
}

func topByProficiency(skills []model.Skill, n int) []model.Skill {
	out := slices.Clone(skills)
	if out == nil {
		out = make([]model.Skill, 0)
	}
	slices.SortStableFunc(out, func(a, b model.Skill) int {
		if c := cmp.Compare(b.Proficiency, a.Proficiency); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
