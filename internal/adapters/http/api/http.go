// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/dedupe"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/pkg/logger"
)

// DefaultMaxLimit caps GET /api/leaderboard?limit when no limit is configured.
const DefaultMaxLimit = 100

// IdempotencyHeader carries the client key that makes a create request repeatable.
const IdempotencyHeader = "Idempotency-Key"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Resources exposes the record stores behind the CRUD routes.
	Resources() repository.Stores

	LeaderboardDependencies
	ViewDependencies
	CommunityDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps               Dependencies
	validate           *validator.Validate
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	viewsHandler       *ViewsHandler
	communityHandler   *CommunityHandler
}

// NewServer creates a new API server with all handlers. maxLimit bounds the
// leaderboard limit; non-positive values use DefaultMaxLimit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &Server{
		deps:               deps,
		validate:           newValidator(),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		viewsHandler:       NewViewsHandler(deps),
		communityHandler:   NewCommunityHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))

	v := s.viewsHandler
	mux.HandleFunc("GET /api/members/stats", MetricsMiddleware(v.HandleMemberStats, "member_stats"))
	mux.HandleFunc("GET /api/members/export.csv", MetricsMiddleware(v.HandleMemberExport, "member_export"))
	mux.HandleFunc("GET /api/submissions/search", MetricsMiddleware(v.HandleSearchSubmissions, "submission_search"))
	mux.HandleFunc("GET /api/skills/search", MetricsMiddleware(v.HandleSearchSkills, "skill_search"))
	mux.HandleFunc("GET /api/skills/analytics", MetricsMiddleware(v.HandleSkillAnalytics, "skill_analytics"))
	mux.HandleFunc("GET /api/classes/search", MetricsMiddleware(v.HandleSearchClasses, "class_search"))
	mux.HandleFunc("GET /api/tasks/search", MetricsMiddleware(v.HandleSearchTasks, "task_search"))
	mux.HandleFunc("GET /api/tasks/summary", MetricsMiddleware(v.HandleTaskSummary, "task_summary"))
	mux.HandleFunc("GET /api/contest/overview", MetricsMiddleware(v.HandleContestOverview, "contest_overview"))
	mux.HandleFunc("GET /api/portfolio/{slug}", MetricsMiddleware(v.HandlePortfolio, "portfolio"))

	c := s.communityHandler
	mux.HandleFunc("GET /api/projects/search", MetricsMiddleware(c.HandleSearchProjects, "project_search"))
	mux.HandleFunc("GET /api/posts/search", MetricsMiddleware(c.HandleSearchPosts, "post_search"))
	mux.HandleFunc("GET /api/community-tasks/search", MetricsMiddleware(c.HandleSearchCommunityTasks, "community_task_search"))
	mux.HandleFunc("GET /api/certificates/search", MetricsMiddleware(c.HandleSearchCertificates, "certificate_search"))
	mux.HandleFunc("POST /api/certificates/issue", MetricsMiddleware(c.HandleIssuePending, "certificate_issue_pending"))
	mux.HandleFunc("POST /api/certificates/{id}/issue", MetricsMiddleware(c.HandleIssueCertificate, "certificate_issue"))

	registerResource(mux, repository.EntityMembers, s, func(st repository.Stores) repository.Store[model.Member] { return st.Members })
	registerResource(mux, repository.EntitySubmissions, s, func(st repository.Stores) repository.Store[model.Submission] { return st.Submissions })
	registerResource(mux, repository.EntitySkills, s, func(st repository.Stores) repository.Store[model.Skill] { return st.Skills })
	registerResource(mux, repository.EntityClasses, s, func(st repository.Stores) repository.Store[model.ClassContest] { return st.Classes })
	registerResource(mux, repository.EntityTasks, s, func(st repository.Stores) repository.Store[model.Task] { return st.Tasks })
	registerResource(mux, repository.EntityCertificates, s, func(st repository.Stores) repository.Store[model.Certificate] { return st.Certificates })
	registerResource(mux, repository.EntityBadges, s, func(st repository.Stores) repository.Store[model.Badge] { return st.Badges })
	registerResource(mux, repository.EntityProjects, s, func(st repository.Stores) repository.Store[model.Project] { return st.Projects })
	registerResource(mux, repository.EntityPosts, s, func(st repository.Stores) repository.Store[model.Post] { return st.Posts })
	registerResource(mux, repository.EntityCommunity, s, func(st repository.Stores) repository.Store[model.CommunityTask] { return st.Community })
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail classifies err, logs server-side failures and writes the response.
func fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Get().Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}
