package filter

import (
	"fmt"
	"strings"

	"github.com/okian/skillport/internal/domain/model"
)

// Featured is the project selector that keeps featured projects of any status.
const Featured = "featured"

// ParseProjectShow accepts "all", "featured" or a project status. The
// unrestricted selector parses to "".
func ParseProjectShow(s string) (string, error) {
	if Unrestricted(s) {
		return "", nil
	}
	v := strings.ToLower(strings.TrimSpace(s))
	if v == Featured || model.ProjectStatus(v).Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelector, s)
}

// ProjectCriteria narrows the project showcase.
type ProjectCriteria struct {
	Search string
	// Show is "", Featured or a project status.
	Show string
}

// Predicates compiles the criteria.
func (c ProjectCriteria) Predicates() []Predicate[model.Project] {
	preds := []Predicate[model.Project]{
		Search(c.Search,
			Text(func(p model.Project) string { return p.Title }),
			Text(func(p model.Project) string { return p.Description }),
			List(func(p model.Project) []string { return p.Tags }),
		),
	}
	if c.Show == Featured {
		return append(preds, func(p model.Project) bool { return p.Featured })
	}
	return append(preds, Equals(c.Show, func(p model.Project) model.ProjectStatus { return p.Status }))
}

// Apply filters projects.
func (c ProjectCriteria) Apply(projects []model.Project) []model.Project {
	return Apply(projects, c.Predicates()...)
}

// PostCriteria narrows the journal.
type PostCriteria struct {
	Search string
	Type   string
}

// Predicates compiles the criteria.
func (c PostCriteria) Predicates() []Predicate[model.Post] {
	return []Predicate[model.Post]{
		Search(c.Search,
			Text(func(p model.Post) string { return p.Title }),
			Text(func(p model.Post) string { return p.Content }),
			List(func(p model.Post) []string { return p.Tags }),
		),
		Equals(c.Type, func(p model.Post) model.PostType { return p.Type }),
	}
}

// Apply filters posts.
func (c PostCriteria) Apply(posts []model.Post) []model.Post {
	return Apply(posts, c.Predicates()...)
}

// CommunityTaskCriteria narrows the community challenge board.
type CommunityTaskCriteria struct {
	Search     string
	Platform   string
	Difficulty string
}

// Predicates compiles the criteria.
func (c CommunityTaskCriteria) Predicates() []Predicate[model.CommunityTask] {
	return []Predicate[model.CommunityTask]{
		Search(c.Search,
			Text(func(t model.CommunityTask) string { return t.Title }),
			TextPtr(func(t model.CommunityTask) *string { return t.Description }),
		),
		Equals(c.Platform, func(t model.CommunityTask) model.TaskPlatform { return t.Platform }),
		Equals(c.Difficulty, func(t model.CommunityTask) model.Difficulty { return t.Difficulty }),
	}
}

// Apply filters community tasks.
func (c CommunityTaskCriteria) Apply(tasks []model.CommunityTask) []model.CommunityTask {
	return Apply(tasks, c.Predicates()...)
}

// Certificate issue states.
const (
	Issued  = "issued"
	Pending = "pending"
)

// ParseIssueState accepts "all", "issued" or "pending". The unrestricted
// selector parses to "".
func ParseIssueState(s string) (string, error) {
	if Unrestricted(s) {
		return "", nil
	}
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case Issued, Pending:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelector, s)
}

// CertificateCriteria narrows the certificate register.
type CertificateCriteria struct {
	Search string
	Member string
	Class  string
	Type   string
	// State is "", Issued or Pending.
	State string
}

// Predicates compiles the criteria.
func (c CertificateCriteria) Predicates() []Predicate[model.Certificate] {
	preds := []Predicate[model.Certificate]{
		Search(c.Search,
			Text(func(ct model.Certificate) string { return ct.MemberName }),
			Text(func(ct model.Certificate) string { return ct.ClassName }),
		),
		Equals(c.Member, func(ct model.Certificate) string { return ct.MemberID }),
		Equals(c.Class, func(ct model.Certificate) string { return ct.ClassID }),
		Equals(c.Type, func(ct model.Certificate) model.CertificateType { return ct.CertificateType }),
	}
	switch c.State {
	case Issued:
		preds = append(preds, func(ct model.Certificate) bool { return ct.IsIssued })
	case Pending:
		preds = append(preds, func(ct model.Certificate) bool { return !ct.IsIssued })
	}
	return preds
}

// Apply filters certificates.
func (c CertificateCriteria) Apply(certs []model.Certificate) []model.Certificate {
	return Apply(certs, c.Predicates()...)
}
