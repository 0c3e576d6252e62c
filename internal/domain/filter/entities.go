package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/okian/skillport/internal/domain/model"
)

// SubmissionCriteria narrows the submission tracker and leaderboard input.
type SubmissionCriteria struct {
	Search   string
	Member   string
	Platform string
	Verdict  string
	Class    string
	Window   Window
	Now      time.Time
}

// Predicates compiles the criteria.
func (c SubmissionCriteria) Predicates() []Predicate[model.Submission] {
	return []Predicate[model.Submission]{
		Search(c.Search,
			Text(func(s model.Submission) string { return s.ProblemName }),
			Text(func(s model.Submission) string { return s.MemberUsername }),
		),
		Equals(c.Member, func(s model.Submission) string { return s.MemberID }),
		EqualsPtr(c.Platform, func(s model.Submission) *string { return s.Platform }),
		Equals(c.Verdict, func(s model.Submission) model.Verdict { return s.Verdict }),
		EqualsPtr(c.Class, func(s model.Submission) *string { return s.ClassID }),
		Within(c.Window, c.Now, func(s model.Submission) *time.Time { return s.SubmissionTime }),
	}
}

// Apply filters subs.
func (c SubmissionCriteria) Apply(subs []model.Submission) []model.Submission {
	return Apply(subs, c.Predicates()...)
}

// MemberCriteria narrows the member table.
type MemberCriteria struct {
	Search string
}

// Predicates compiles the criteria.
func (c MemberCriteria) Predicates() []Predicate[model.Member] {
	return []Predicate[model.Member]{
		Search(c.Search,
			Text(func(m model.Member) string { return m.Name }),
			Text(func(m model.Member) string { return m.Username }),
			Text(func(m model.Member) string { return m.Email }),
		),
	}
}

// Apply filters members.
func (c MemberCriteria) Apply(members []model.Member) []model.Member {
	return Apply(members, c.Predicates()...)
}

// SkillSort orders the skill tracker.
type SkillSort string

// SkillSort values.
const (
	SortUpdated      SkillSort = "updated"
	SortProficiency  SkillSort = "proficiency"
	SortAlphabetical SkillSort = "alphabetical"
)

// ParseSkillSort defaults to SortUpdated for a blank value.
func ParseSkillSort(s string) (SkillSort, error) {
	switch v := SkillSort(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SortUpdated, nil
	case SortUpdated, SortProficiency, SortAlphabetical:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// ParseLevel returns the empty level for an unrestricted value.
func ParseLevel(s string) (model.Level, error) {
	if Unrestricted(s) {
		return "", nil
	}
	l, ok := model.ParseLevel(strings.TrimSpace(s))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// SkillCriteria narrows and orders the skill tracker.
type SkillCriteria struct {
	Search   string
	Category string
	Level    model.Level
	Sort     SkillSort
}

// Predicates compiles the criteria.
func (c SkillCriteria) Predicates() []Predicate[model.Skill] {
	preds := []Predicate[model.Skill]{
		Search(c.Search,
			Text(func(s model.Skill) string { return s.SkillName }),
			List(func(s model.Skill) []string { return s.Tags }),
			Text(func(s model.Skill) string { return string(s.Category) }),
		),
		Equals(c.Category, func(s model.Skill) model.SkillCategory { return s.Category }),
	}
	if c.Level != "" {
		lo, hi := c.Level.Bounds()
		preds = append(preds, Between(float64(lo), float64(hi), func(s model.Skill) float64 {
			return float64(s.Proficiency)
		}))
	}
	return preds
}

// Apply filters skills and orders the result.
func (c SkillCriteria) Apply(skills []model.Skill) []model.Skill {
	out := Apply(skills, c.Predicates()...)
	SortSkills(out, c.Sort)
	return out
}

// SortSkills orders skills in place. Ties fall back to id so the order is total.
func SortSkills(skills []model.Skill, by SkillSort) {
	slices.SortStableFunc(skills, func(a, b model.Skill) int {
		var c int
		switch by {
		case SortProficiency:
			c = cmp.Compare(b.Proficiency, a.Proficiency)
		case SortAlphabetical:
			c = cmp.Compare(strings.ToLower(a.SkillName), strings.ToLower(b.SkillName))
		default:
			c = b.UpdatedAt.Compare(a.UpdatedAt)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// ClassCriteria narrows the class and contest table.
type ClassCriteria struct {
	Search   string
	Platform string
	Category string
}

// Predicates compiles the criteria.
func (c ClassCriteria) Predicates() []Predicate[model.ClassContest] {
	problems := func(cl model.ClassContest) []model.Problem { return cl.Problems }
	return []Predicate[model.ClassContest]{
		Search(c.Search,
			Text(func(cl model.ClassContest) string { return cl.ClassName }),
			Text(func(cl model.ClassContest) string { return cl.ContentCovered }),
			List(func(cl model.ClassContest) []string {
				names := make([]string, 0, len(cl.Problems))
				for _, p := range cl.Problems {
					names = append(names, p.ProblemName)
				}
				return names
			}),
		),
		AnyOf(problems, Equals(c.Platform, func(p model.Problem) model.Platform { return p.Platform })),
		AnyOf(problems, Equals(c.Category, func(p model.Problem) model.ProblemCategory { return p.Category })),
	}
}

// Apply filters classes.
func (c ClassCriteria) Apply(classes []model.ClassContest) []model.ClassContest {
	return Apply(classes, c.Predicates()...)
}

// TaskCriteria narrows the personal task board.
type TaskCriteria struct {
	Search   string
	Category string
	Status   string
	Priority string
}

// Predicates compiles the criteria.
func (c TaskCriteria) Predicates() []Predicate[model.Task] {
	return []Predicate[model.Task]{
		Search(c.Search,
			Text(func(t model.Task) string { return t.Title }),
			TextPtr(func(t model.Task) *string { return t.Description }),
			List(func(t model.Task) []string { return t.Tags }),
		),
		Equals(c.Category, func(t model.Task) model.TaskCategory { return t.Category }),
		Equals(c.Status, func(t model.Task) model.TaskStatus { return t.Status }),
		Equals(c.Priority, func(t model.Task) model.TaskPriority { return t.Priority }),
	}
}

// Apply filters tasks.
func (c TaskCriteria) Apply(tasks []model.Task) []model.Task {
	return Apply(tasks, c.Predicates()...)
}
