// Package ranking orders aggregated statistics by a selectable metric.
//
// Ordering is total: after the metric, ties are broken by group key
// ascending. Ranks are 1-based sort positions, so tied values still get
// distinct consecutive ranks.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/skillport/internal/domain/stats"
)

// Sentinel parse errors.
var (
	ErrUnknownMetric    = errors.New("unknown ranking metric")
	ErrUnknownDirection = errors.New("unknown ranking direction")
)

// Metric selects the statistic a ranking orders by.
type Metric string

// Metric values.
const (
	MetricScore    Metric = "score"
	MetricProblems Metric = "problems"
	MetricAccuracy Metric = "accuracy"
	// MetricTime orders by average solve time. Members without timed accepted
	// submissions (avgTime 0) always rank last, in either direction, rather
	// than first as a plain ascending sort on 0 would place them.
	MetricTime Metric = "time"
)

// Metrics lists the supported metrics.
var Metrics = []Metric{MetricScore, MetricProblems, MetricAccuracy, MetricTime}

// ParseMetric accepts a metric name in any case.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Metrics, m) {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Direction is the sort direction of a ranking.
type Direction int

// Direction values. DirectionDefault uses the metric's natural direction.
const (
	DirectionDefault Direction = iota
	Ascending
	Descending
)

// ParseDirection accepts "", "asc"/"ascending" and "desc"/"descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DirectionDefault, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return DirectionDefault, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "default"
}

// Natural returns the direction in which the metric reads best-first.
// Average time is ascending, every other metric descending.
func (m Metric) Natural() Direction {
	if m == MetricTime {
		return Ascending
	}
	return Descending
}

func (m Metric) value(s stats.Stats) float64 {
	switch m {
	case MetricProblems:
		return float64(s.ProblemsSolved)
	case MetricAccuracy:
		return float64(s.Accuracy)
	case MetricTime:
		return float64(s.AvgTime)
	}
	return s.TotalScore
}

// Entry is one ranked row.
type Entry struct {
	Rank  int         `json:"rank"`
	Key   string      `json:"key"`
	Stats stats.Stats `json:"stats"`
}

// Rank orders byKey by metric. An unknown metric ranks by score.
func Rank(byKey map[string]stats.Stats, metric Metric, dir Direction) []Entry {
	out := make([]Entry, 0, len(byKey))
	for k, s := range byKey {
		out = append(out, Entry{Key: k, Stats: s})
	}
	return sortEntries(out, metric, dir)
}

// Rerank orders already ranked entries by a different metric. The input is
// not modified.
func Rerank(entries []Entry, metric Metric, dir Direction) []Entry {
	return sortEntries(slices.Clone(entries), metric, dir)
}

func sortEntries(out []Entry, metric Metric, dir Direction) []Entry {
	if dir == DirectionDefault {
		dir = metric.Natural()
	}
	slices.SortFunc(out, func(a, b Entry) int {
		// no average time means no data; it trails in both directions
		if metric == MetricTime {
			az, bz := a.Stats.AvgTime == 0, b.Stats.AvgTime == 0
			if az != bz {
				if az {
					return 1
				}
				return -1
			}
		}
		c := cmp.Compare(metric.value(a.Stats), metric.value(b.Stats))
		if dir == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// TopN returns the first min(n, len(entries)) entries.
func TopN(entries []Entry, n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n:n]
}
