package stats

import "github.com/okian/skillport/internal/domain/model"

// Tasks is the task board summary.
type Tasks struct {
	Total          int `json:"total"`
	Todo           int `json:"todo"`
	InProgress     int `json:"in_progress"`
	Done           int `json:"done"`
	CompletionRate int `json:"completionRate"`
}

// TaskSummary counts tasks per status.
func TaskSummary(tasks []model.Task) Tasks {
	t := Tasks{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case model.StatusTodo:
			t.Todo++
		case model.StatusInProgress:
			t.InProgress++
		case model.StatusDone:
			t.Done++
		}
	}
	t.CompletionRate = Percent(t.Done, t.Total)
	return t
}

// Overview is the contest dashboard header.
type Overview struct {
	TotalClasses       int `json:"totalClasses"`
	TotalMembers       int `json:"totalMembers"`
	TotalProblems      int `json:"totalProblems"`
	TotalSubmissions   int `json:"totalSubmissions"`
	Accuracy           int `json:"accuracy"`
	CertificatesIssued int `json:"certificatesIssued"`
}

// ContestOverview computes community-wide totals.
func ContestOverview(
	classes []model.ClassContest,
	members []model.Member,
	subs []model.Submission,
	certs []model.Certificate,
) Overview {
	o := Overview{
		TotalClasses:     len(classes),
		TotalMembers:     len(members),
		TotalSubmissions: len(subs),
	}
	for _, c := range classes {
		o.TotalProblems += len(c.Problems)
	}
	accepted := 0
	for _, s := range subs {
		if s.Accepted() {
			accepted++
		}
	}
	o.Accuracy = Percent(accepted, len(subs))
	for _, c := range certs {
		if c.IsIssued {
			o.CertificatesIssued++
		}
	}
	return o
}
