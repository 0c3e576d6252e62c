package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/ranking"
	"github.com/okian/skillport/internal/domain/types"
)

// LeaderboardDependencies defines the interface for leaderboard operations
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, q types.LeaderboardQuery) (types.Leaderboard, error)
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles
// GET /api/leaderboard?metric=&direction=&window=&class=&limit= requests.
// Without a limit every member is returned.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	q := r.URL.Query()

	var (
		query types.LeaderboardQuery
		err   error
	)
	if m := q.Get("metric"); m != "" {
		if query.Metric, err = ranking.ParseMetric(m); err != nil {
			fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
			return
		}
	}
	if query.Direction, err = ranking.ParseDirection(q.Get("direction")); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if query.Window, err = filter.ParseWindow(q.Get("window")); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	query.Class = q.Get("class")

	if limitStr := q.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		query.Limit = n
	}

	lb, err := h.deps.Leaderboard(r.Context(), query)
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, lb)
}
