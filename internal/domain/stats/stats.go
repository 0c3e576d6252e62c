// Package stats derives per-group submission statistics and the summary
// views built on top of them. Every function is pure: the same snapshot
// always yields the same result and inputs are never modified.
package stats

import (
	"math"

	"github.com/okian/skillport/internal/domain/model"
)

// Stats is the aggregate of one group of submissions.
type Stats struct {
	TotalSubmissions    int     `json:"totalSubmissions"`
	AcceptedSubmissions int     `json:"acceptedSubmissions"`
	ProblemsSolved      int     `json:"problemsSolved"`
	TotalScore          float64 `json:"totalScore"`
	Accuracy            int     `json:"accuracy"`
	AvgTime             int     `json:"avgTime"`
}

// GroupBy extracts the grouping key of a submission. ok is false when the
// key is absent, in which case the submission is skipped.
type GroupBy func(model.Submission) (key string, ok bool)

// Grouping selectors.
var (
	ByMember GroupBy = func(s model.Submission) (string, bool) { return s.MemberID, s.MemberID != "" }
	ByClass  GroupBy = func(s model.Submission) (string, bool) {
		return model.Deref(s.ClassID), model.Deref(s.ClassID) != ""
	}
	ByPlatform GroupBy = func(s model.Submission) (string, bool) {
		return model.Deref(s.Platform), model.Deref(s.Platform) != ""
	}
	ByLanguage GroupBy = func(s model.Submission) (string, bool) { return string(s.Language), s.Language != "" }
)

type options struct {
	keys []string
}

// Option configures Aggregate.
type Option func(*options)

// WithKeys seeds a zero-stat row for each key so groups without submissions
// still appear in the result.
func WithKeys(keys ...string) Option {
	return func(o *options) {
		o.keys = append(o.keys, keys...)
	}
}

// acc accumulates one group before the ratios are derived.
type acc struct {
	total    int
	accepted int
	solved   map[string]struct{}
	score    float64
	timeSum  float64
	timeN    int
}

func (a *acc) add(s model.Submission) {
	a.total++
	a.score += s.Points()
	if !s.Accepted() {
		return
	}
	a.accepted++
	if s.ProblemName != "" {
		if a.solved == nil {
			a.solved = make(map[string]struct{})
		}
		a.solved[s.ProblemName] = struct{}{}
	}
	if d := s.Duration(); d > 0 {
		a.timeSum += d
		a.timeN++
	}
}

func (a *acc) stats() Stats {
	return Stats{
		TotalSubmissions:    a.total,
		AcceptedSubmissions: a.accepted,
		ProblemsSolved:      len(a.solved),
		TotalScore:          a.score,
		Accuracy:            Percent(a.accepted, a.total),
		AvgTime:             roundDiv(a.timeSum, a.timeN),
	}
}

// Aggregate groups subs by key and computes Stats per group.
func Aggregate(subs []model.Submission, groupBy GroupBy, opts ...Option) map[string]Stats {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	groups := make(map[string]*acc, len(o.keys))
	for _, k := range o.keys {
		if _, ok := groups[k]; !ok {
			groups[k] = &acc{}
		}
	}
	for _, s := range subs {
		k, ok := groupBy(s)
		if !ok {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &acc{}
			groups[k] = g
		}
		g.add(s)
	}

	out := make(map[string]Stats, len(groups))
	for k, g := range groups {
		out[k] = g.stats()
	}
	return out
}

// Summarize computes the Stats of subs as a single group.
func Summarize(subs []model.Submission) Stats {
	var a acc
	for _, s := range subs {
		a.add(s)
	}
	return a.stats()
}

// Percent returns round(100*part/whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func roundDiv(sum float64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}
