package seed

import (
	"context"
	"fmt"

	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/internal/domain/ranking"
	"github.com/okian/skillport/internal/domain/stats"
	"github.com/okian/skillport/internal/domain/types"
	"github.com/okian/skillport/pkg/logger"
)

// expectedRanking ranks the seeded members by score from the seeded submissions.
func expectedRanking(members []model.Member, subs []model.Submission) []ranking.Entry {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	byMember := stats.Aggregate(subs, stats.ByMember, stats.WithKeys(ids...))
	return ranking.Rank(byMember, ranking.MetricScore, ranking.DirectionDefault)
}

// verifyLeaderboard checks that the seeded members appear in the server
// leaderboard in the expected relative order with the expected statistics.
// Members the run did not create are ignored.
func verifyLeaderboard(expected []ranking.Entry, lb types.Leaderboard) error {
	seeded := make(map[string]struct{}, len(expected))
	for _, e := range expected {
		seeded[e.Key] = struct{}{}
	}
	got := make([]types.LeaderboardEntry, 0, len(expected))
	for _, e := range lb.Entries {
		if _, ok := seeded[e.MemberID]; ok {
			got = append(got, e)
		}
	}
	if len(got) != len(expected) {
		return fmt.Errorf("%w: leaderboard has %d of %d seeded members", ErrMismatch, len(got), len(expected))
	}
	for i := range expected {
		if got[i].MemberID != expected[i].Key {
			return fmt.Errorf("%w: position %d: got member %s, want %s", ErrMismatch, i, got[i].MemberID, expected[i].Key)
		}
		if got[i].Stats != expected[i].Stats {
			return fmt.Errorf("%w: member %s: got %+v, want %+v", ErrMismatch, got[i].MemberID, got[i].Stats, expected[i].Stats)
		}
	}
	for i := 1; i < len(lb.Entries); i++ {
		if lb.Entries[i].TotalScore > lb.Entries[i-1].TotalScore {
			return fmt.Errorf("%w: entry %d scores above entry %d", ErrMismatch, i, i-1)
		}
	}
	return nil
}

// displayTopPerformers logs the head of the server leaderboard.
func displayTopPerformers(ctx context.Context, lb types.Leaderboard, n int) {
	for _, e := range lb.Entries[:min(n, len(lb.Entries))] {
		logger.Get().Info(ctx, "leaderboard",
			logger.Int("rank", e.Rank),
			logger.String("username", e.Username),
			logger.Float64("totalScore", e.TotalScore),
			logger.Int("problemsSolved", e.ProblemsSolved),
			logger.Int("accuracy", e.Accuracy))
	}
}
