package api

import (
	"context"
	"encoding/csv"
	"net/http"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/internal/domain/stats"
	"github.com/okian/skillport/internal/domain/types"
	"github.com/okian/skillport/pkg/logger"
)

// ViewDependencies defines the filtered and aggregated read views.
type ViewDependencies interface {
	MemberStats(ctx context.Context, c filter.MemberCriteria) ([]types.MemberRow, error)
	SearchSubmissions(ctx context.Context, c filter.SubmissionCriteria) ([]model.Submission, error)
	SearchSkills(ctx context.Context, c filter.SkillCriteria) ([]model.Skill, error)
	SkillAnalytics(ctx context.Context) (stats.SkillReport, error)
	SearchClasses(ctx context.Context, c filter.ClassCriteria) ([]model.ClassContest, error)
	SearchTasks(ctx context.Context, c filter.TaskCriteria) ([]model.Task, error)
	TaskSummary(ctx context.Context) (stats.Tasks, error)
	ContestOverview(ctx context.Context) (stats.Overview, error)
	Portfolio(ctx context.Context, slug string) (types.Portfolio, error)
}

// ViewsHandler serves the search, analytics and portfolio views.
type ViewsHandler struct {
	deps ViewDependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// respond writes out, or the classified error.
func respond[T any](w http.ResponseWriter, r *http.Request, op string, out T, err error) {
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleMemberStats handles GET /api/members/stats?search=.
func (h *ViewsHandler) HandleMemberStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.member_stats"
	out, err := h.deps.MemberStats(r.Context(), filter.MemberCriteria{Search: r.URL.Query().Get("search")})
	respond(w, r, op, out, err)
}

// HandleMemberExport handles GET /api/members/export.csv?search=.
func (h *ViewsHandler) HandleMemberExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.member_export"
	rows, err := h.deps.MemberStats(r.Context(), filter.MemberCriteria{Search: r.URL.Query().Get("search")})
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="members-data.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(types.MemberCSVHeader)
	for _, row := range rows {
		_ = cw.Write(row.CSV())
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Get().Warn(r.Context(), "member export truncated", logger.Error(Wrap(op, err)))
	}
}

// HandleSearchSubmissions handles
// GET /api/submissions/search?search=&member=&platform=&verdict=&class=&window=.
func (h *ViewsHandler) HandleSearchSubmissions(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_submissions"
	q := r.URL.Query()
	window, err := filter.ParseWindow(q.Get("window"))
	if err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SearchSubmissions(r.Context(), filter.SubmissionCriteria{
		Search:   q.Get("search"),
		Member:   q.Get("member"),
		Platform: q.Get("platform"),
		Verdict:  q.Get("verdict"),
		Class:    q.Get("class"),
		Window:   window,
	})
	respond(w, r, op, out, err)
}

// HandleSearchSkills handles GET /api/skills/search?search=&category=&proficiency=&sort=.
func (h *ViewsHandler) HandleSearchSkills(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_skills"
	q := r.URL.Query()
	level, err := filter.ParseLevel(q.Get("proficiency"))
	if err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	sort, err := filter.ParseSkillSort(q.Get("sort"))
	if err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SearchSkills(r.Context(), filter.SkillCriteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Level:    level,
		Sort:     sort,
	})
	respond(w, r, op, out, err)
}

// HandleSkillAnalytics handles GET /api/skills/analytics.
func (h *ViewsHandler) HandleSkillAnalytics(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.SkillAnalytics(r.Context())
	respond(w, r, "api.skill_analytics", out, err)
}

// HandleSearchClasses handles GET /api/classes/search?search=&platform=&category=.
func (h *ViewsHandler) HandleSearchClasses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.deps.SearchClasses(r.Context(), filter.ClassCriteria{
		Search:   q.Get("search"),
		Platform: q.Get("platform"),
		Category: q.Get("category"),
	})
	respond(w, r, "api.search_classes", out, err)
}

// HandleSearchTasks handles GET /api/tasks/search?search=&category=&status=&priority=.
func (h *ViewsHandler) HandleSearchTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.deps.SearchTasks(r.Context(), filter.TaskCriteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	})
	respond(w, r, "api.search_tasks", out, err)
}

// HandleTaskSummary handles GET /api/tasks/summary.
func (h *ViewsHandler) HandleTaskSummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.TaskSummary(r.Context())
	respond(w, r, "api.task_summary", out, err)
}

// HandleContestOverview handles GET /api/contest/overview.
func (h *ViewsHandler) HandleContestOverview(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.ContestOverview(r.Context())
	respond(w, r, "api.contest_overview", out, err)
}

// HandlePortfolio handles GET /api/portfolio/{slug}.
func (h *ViewsHandler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.Portfolio(r.Context(), r.PathValue("slug"))
	respond(w, r, "api.portfolio", out, err)
}
