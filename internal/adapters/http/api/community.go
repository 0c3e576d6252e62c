package api

import (
	"context"
	"net/http"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
)

// CommunityDependencies defines the showcase, journal and certificate views.
type CommunityDependencies interface {
	SearchProjects(ctx context.Context, c filter.ProjectCriteria) ([]model.Project, error)
	SearchPosts(ctx context.Context, c filter.PostCriteria) ([]model.Post, error)
	SearchCommunityTasks(ctx context.Context, c filter.CommunityTaskCriteria) ([]model.CommunityTask, error)
	SearchCertificates(ctx context.Context, c filter.CertificateCriteria) ([]model.Certificate, error)
	IssueCertificate(ctx context.Context, id string) (model.Certificate, error)
	IssuePending(ctx context.Context) ([]model.Certificate, error)
}

// CommunityHandler serves the community facing views and certificate issuing.
type CommunityHandler struct {
	deps CommunityDependencies
}

// NewCommunityHandler creates a new community handler.
func NewCommunityHandler(deps CommunityDependencies) *CommunityHandler {
	return &CommunityHandler{deps: deps}
}

// HandleSearchProjects handles GET /api/projects/search?search=&show=all|featured|<status>.
func (h *CommunityHandler) HandleSearchProjects(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_projects"
	q := r.URL.Query()
	show, err := filter.ParseProjectShow(q.Get("show"))
	if err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SearchProjects(r.Context(), filter.ProjectCriteria{Search: q.Get("search"), Show: show})
	respond(w, r, op, out, err)
}

// HandleSearchPosts handles GET /api/posts/search?search=&type=.
func (h *CommunityHandler) HandleSearchPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.deps.SearchPosts(r.Context(), filter.PostCriteria{Search: q.Get("search"), Type: q.Get("type")})
	respond(w, r, "api.search_posts", out, err)
}

// HandleSearchCommunityTasks handles GET /api/community-tasks/search?search=&platform=&difficulty=.
func (h *CommunityHandler) HandleSearchCommunityTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.deps.SearchCommunityTasks(r.Context(), filter.CommunityTaskCriteria{
		Search:     q.Get("search"),
		Platform:   q.Get("platform"),
		Difficulty: q.Get("difficulty"),
	})
	respond(w, r, "api.search_community_tasks", out, err)
}

// HandleSearchCertificates handles
// GET /api/certificates/search?search=&member=&class=&type=&state=all|issued|pending.
func (h *CommunityHandler) HandleSearchCertificates(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_certificates"
	q := r.URL.Query()
	state, err := filter.ParseIssueState(q.Get("state"))
	if err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.SearchCertificates(r.Context(), filter.CertificateCriteria{
		Search: q.Get("search"),
		Member: q.Get("member"),
		Class:  q.Get("class"),
		Type:   q.Get("type"),
		State:  state,
	})
	respond(w, r, op, out, err)
}

// HandleIssueCertificate handles POST /api/certificates/{id}/issue.
func (h *CommunityHandler) HandleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.IssueCertificate(r.Context(), r.PathValue("id"))
	respond(w, r, "api.issue_certificate", out, err)
}

// HandleIssuePending handles POST /api/certificates/issue.
func (h *CommunityHandler) HandleIssuePending(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.IssuePending(r.Context())
	respond(w, r, "api.issue_pending_certificates", out, err)
}
