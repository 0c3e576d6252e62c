package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/internal/domain/ranking"
	"github.com/okian/skillport/internal/domain/stats"
	"github.com/okian/skillport/internal/domain/types"
	"github.com/okian/skillport/pkg/logger"
	"github.com/okian/skillport/pkg/metrics"
)

// observe records one pipeline run for view.
func (s *Service) observe(view string, start time.Time) {
	metrics.RecordPipelineRun(view, float64(time.Since(start).Microseconds())/1000)
}

// snapshot fetches every record of a store for a pipeline run.
func snapshot[T any](ctx context.Context, entity string, store repository.Store[T], sort string) ([]T, error) {
	all, err := store.List(ctx, sort)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", entity, err)
	}
	metrics.RecordRecordsScanned(entity, len(all))
	return all, nil
}

// rosterStats aggregates subs per member, seeding a zero row for every
// member and dropping submissions of unknown members.
func rosterStats(members []model.Member, subs []model.Submission) map[string]stats.Stats {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	byMember := stats.Aggregate(subs, stats.ByMember, stats.WithKeys(ids...))
	if len(byMember) != len(ids) {
		known := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			known[id] = struct{}{}
		}
		for k := range byMember {
			if _, ok := known[k]; !ok {
				delete(byMember, k)
			}
		}
	}
	return byMember
}

// Leaderboard ranks every member by statistics recomputed from the
// submissions that pass the window and class filters.
func (s *Service) Leaderboard(ctx context.Context, q types.LeaderboardQuery) (types.Leaderboard, error) {
	const view = "leaderboard"
	defer s.observe(view, time.Now())

	members, err := snapshot(ctx, repository.EntityMembers, s.stores.Members, "")
	if err != nil {
		return types.Leaderboard{}, err
	}
	subs, err := snapshot(ctx, repository.EntitySubmissions, s.stores.Submissions, "")
	if err != nil {
		return types.Leaderboard{}, err
	}

	metric := q.Metric
	if metric == "" {
		metric = s.defaultMetric
	}
	window := q.Window
	if window == "" {
		window = filter.WindowNone
	}
	subs = filter.SubmissionCriteria{Class: q.Class, Window: window, Now: s.now()}.Apply(subs)

	entries := ranking.Rank(rosterStats(members, subs), metric, q.Direction)
	if q.Limit > 0 {
		entries = ranking.TopN(entries, q.Limit)
	}

	byID := make(map[string]model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	out := types.Leaderboard{
		Metric:    string(metric),
		Direction: q.Direction.String(),
		Window:    string(window),
		Entries:   make([]types.LeaderboardEntry, 0, len(entries)),
	}
	if q.Direction == ranking.DirectionDefault {
		out.Direction = metric.Natural().String()
	}
	for _, e := range entries {
		m := byID[e.Key]
		out.Entries = append(out.Entries, types.LeaderboardEntry{
			Rank:         e.Rank,
			MemberID:     e.Key,
			Name:         m.Name,
			Username:     m.Username,
			ProfileImage: m.ProfileImage,
			Stats:        e.Stats,
		})
	}

	s.logger.Debug(ctx, "leaderboard computed",
		logger.String("metric", out.Metric),
		logger.String("window", out.Window),
		logger.Int("members", len(members)),
		logger.Int("submissions", len(subs)),
		logger.Int("entries", len(out.Entries)),
	)
	return out, nil
}

// MemberStats returns the member table with statistics recomputed from all
// submissions, newest members first.
func (s *Service) MemberStats(ctx context.Context, c filter.MemberCriteria) ([]types.MemberRow, error) {
	const view = "member_stats"
	defer s.observe(view, time.Now())

	members, err := snapshot(ctx, repository.EntityMembers, s.stores.Members, "-created_date")
	if err != nil {
		return nil, err
	}
	subs, err := snapshot(ctx, repository.EntitySubmissions, s.stores.Submissions, "")
	if err != nil {
		return nil, err
	}

	byMember := rosterStats(members, subs)
	members = c.Apply(members)
	out := make([]types.MemberRow, 0, len(members))
	for _, m := range members {
		out = append(out, types.MemberRow{Member: m, Stats: byMember[m.ID]})
	}
	return out, nil
}

// SearchSubmissions filters submissions, newest first.
func (s *Service) SearchSubmissions(ctx context.Context, c filter.SubmissionCriteria) ([]model.Submission, error) {
	const view = "submissions"
	defer s.observe(view, time.Now())

	subs, err := snapshot(ctx, repository.EntitySubmissions, s.stores.Submissions, "-submissionTime")
	if err != nil {
		return nil, err
	}
	if c.Now.IsZero() {
		c.Now = s.now()
	}
	return c.Apply(subs), nil
}

// SearchSkills filters and orders the owner's skills.
func (s *Service) SearchSkills(ctx context.Context, c filter.SkillCriteria) ([]model.Skill, error) {
	const view = "skills"
	defer s.observe(view, time.Now())

	skills, err := snapshot(ctx, repository.EntitySkills, s.stores.Skills, "")
	if err != nil {
		return nil, err
	}
	return c.Apply(skills), nil
}

// SkillAnalytics summarizes every skill of the owner.
func (s *Service) SkillAnalytics(ctx context.Context) (stats.SkillReport, error) {
	const view = "skill_analytics"
	defer s.observe(view, time.Now())

	skills, err := snapshot(ctx, repository.EntitySkills, s.stores.Skills, "")
	if err != nil {
		return stats.SkillReport{}, err
	}
	return stats.SkillAnalytics(skills), nil
}

// SearchClasses filters classes and contests, latest date first.
func (s *Service) SearchClasses(ctx context.Context, c filter.ClassCriteria) ([]model.ClassContest, error) {
	const view = "classes"
	defer s.observe(view, time.Now())

	classes, err := snapshot(ctx, repository.EntityClasses, s.stores.Classes, "-date")
	if err != nil {
		return nil, err
	}
	return c.Apply(classes), nil
}

// SearchTasks filters the task board, newest first.
func (s *Service) SearchTasks(ctx context.Context, c filter.TaskCriteria) ([]model.Task, error) {
	const view = "tasks"
	defer s.observe(view, time.Now())

	tasks, err := snapshot(ctx, repository.EntityTasks, s.stores.Tasks, "-created_date")
	if err != nil {
		return nil, err
	}
	return c.Apply(tasks), nil
}

// TaskSummary counts the task board per status.
func (s *Service) TaskSummary(ctx context.Context) (stats.Tasks, error) {
	const view = "task_summary"
	defer s.observe(view, time.Now())

	tasks, err := snapshot(ctx, repository.EntityTasks, s.stores.Tasks, "")
	if err != nil {
		return stats.Tasks{}, err
	}
	return stats.TaskSummary(tasks), nil
}

// ContestOverview computes the community dashboard totals.
func (s *Service) ContestOverview(ctx context.Context) (stats.Overview, error) {
	const view = "contest_overview"
	defer s.observe(view, time.Now())

	classes, err := snapshot(ctx, repository.EntityClasses, s.stores.Classes, "")
	if err != nil {
		return stats.Overview{}, err
	}
	members, err := snapshot(ctx, repository.EntityMembers, s.stores.Members, "")
	if err != nil {
		return stats.Overview{}, err
	}
	subs, err := snapshot(ctx, repository.EntitySubmissions, s.stores.Submissions, "")
	if err != nil {
		return stats.Overview{}, err
	}
	certs, err := snapshot(ctx, repository.EntityCertificates, s.stores.Certificates, "")
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.ContestOverview(classes, members, subs, certs), nil
}

// PortfolioSlug is the public path segment of the owner's portfolio.
func (s *Service) PortfolioSlug() string {
	return slug.Make(s.ownerName)
}

// Portfolio returns the owner's public skills, badges and summary. Only the
// owner's slug resolves.
func (s *Service) Portfolio(ctx context.Context, name string) (types.Portfolio, error) {
	const view = "portfolio"
	defer s.observe(view, time.Now())

	want := s.PortfolioSlug()
	if slug.Make(name) != want {
		return types.Portfolio{}, fmt.Errorf("%w: %q: %w", ErrPortfolioNotFound, name, repository.ErrNotFound)
	}

	skills, err := snapshot(ctx, repository.EntitySkills, s.stores.Skills, "")
	if err != nil {
		return types.Portfolio{}, err
	}
	held, err := snapshot(ctx, repository.EntityBadges, s.stores.Badges, "-dateAwarded")
	if err != nil {
		return types.Portfolio{}, err
	}

	public := filter.Apply(skills, model.Skill.Public)
	filter.SortSkills(public, filter.SortProficiency)
	owned := filter.Apply(held, filter.Equals(s.ownerID, func(b model.Badge) string { return b.UserID }))

	return types.Portfolio{
		Owner:   s.ownerName,
		Slug:    want,
		Summary: stats.PortfolioSummary(public),
		Skills:  public,
		Badges:  owned,
	}, nil
}
