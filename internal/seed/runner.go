package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/internal/domain/stats"
	"github.com/okian/skillport/internal/domain/types"
	"github.com/okian/skillport/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// dataset is the JSON dump written to Config.OutputFile.
type dataset struct {
	Members     []model.Member     `json:"members"`
	Submissions []model.Submission `json:"submissions"`
	Skills      []model.Skill      `json:"skills"`
}

// Run executes a complete seeding and verification run.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	st := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seed")

	log.Info(ctx, "starting skillport seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("members", cfg.Members),
		logger.Int("submissionsPerMember", cfg.SubmissionsPerMember),
		logger.Int("skills", cfg.Skills),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	gen := newGenerator(cfg.Seed, time.Now().UTC())

	// Step 1: Check service health
	if err := client.get(ctx, "/healthz", nil); err != nil {
		return st, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// Step 2: Create members
	memberOut, memberOK, t := submitAll(ctx, client, cfg, "/api/members", withKeys(gen.members(cfg.Members)))
	members := keep(memberOut, memberOK)
	st.MembersCreated = len(members)
	st.Failed += int(t.failed.Load())
	log.Info(ctx, "members created", logger.Int("count", st.MembersCreated))

	// Step 3: Create submissions for the created members
	ids := make([]string, len(members))
	usernames := make([]string, len(members))
	for i, m := range members {
		ids[i], usernames[i] = m.ID, m.Username
	}
	subItems := withKeys(gen.submissions(ids, usernames, cfg.SubmissionsPerMember))
	subOut, subOK, t := submitAll(ctx, client, cfg, "/api/submissions", subItems)
	subs := keep(subOut, subOK)
	st.SubmissionsCreated = len(subs)
	st.Failed += int(t.failed.Load())
	log.Info(ctx, "submissions created", logger.Int("count", st.SubmissionsCreated))

	// Step 4: Replay the newest keys; every replay must be answered as a duplicate
	replays := subItems[len(subItems)-min(cfg.Replays, len(subItems)):]
	_, _, t = submitAll(ctx, client, cfg, "/api/submissions", replays)
	st.Duplicates = int(t.duplicate.Load())
	st.Failed += int(t.failed.Load())
	if st.Duplicates != len(replays) {
		return st, fmt.Errorf("%w: %d of %d replays answered as duplicates", ErrMismatch, st.Duplicates, len(replays))
	}

	// Step 5: Create owner skills
	skillOut, skillOK, t := submitAll(ctx, client, cfg, "/api/skills", withKeys(gen.skills(cfg.Skills)))
	st.SkillsCreated = len(keep(skillOut, skillOK))
	st.Failed += int(t.failed.Load())

	if st.Failed > 0 {
		return st, fmt.Errorf("%w: %d create requests failed", ErrIncomplete, st.Failed)
	}

	// Step 6: Fetch and verify the leaderboard
	var lb types.Leaderboard
	if err := client.get(ctx, "/api/leaderboard?metric=score", &lb); err != nil {
		return st, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	st.LeaderboardEntries = len(lb.Entries)
	if err := verifyLeaderboard(expectedRanking(members, subs), lb); err != nil {
		return st, err
	}
	log.Info(ctx, "leaderboard verified", logger.Int("entries", st.LeaderboardEntries))

	// Step 7: Show the podium
	var podium types.Leaderboard
	if err := client.get(ctx, "/api/leaderboard?metric=score&limit=3", &podium); err == nil {
		displayTopPerformers(ctx, podium, 3)
	}

	// Step 8: Save the dataset
	if cfg.OutputFile != "" {
		if err := saveDataset(cfg.OutputFile, dataset{Members: members, Submissions: subs, Skills: keep(skillOut, skillOK)}); err != nil {
			log.Warn(ctx, "failed to save dataset", logger.Error(err))
		}
	}

	st.EndTime = time.Now()
	st.Duration = st.EndTime.Sub(st.StartTime)
	displayFinalStats(ctx, st, stats.Summarize(subs))
	return st, nil
}

// keep returns the records whose ok flag is set.
func keep[T any](recs []T, ok []bool) []T {
	out := make([]T, 0, len(recs))
	for i, r := range recs {
		if ok[i] {
			out = append(out, r)
		}
	}
	return out
}

// saveDataset writes the generated records as indented JSON.
func saveDataset(filename string, d dataset) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, st *Stats, overall stats.Stats) {
	var perSecond float64
	if st.Duration > 0 {
		perSecond = float64(st.MembersCreated+st.SubmissionsCreated+st.SkillsCreated) / st.Duration.Seconds()
	}
	logger.Get().Info(ctx, "final statistics",
		logger.Int("membersCreated", st.MembersCreated),
		logger.Int("submissionsCreated", st.SubmissionsCreated),
		logger.Int("skillsCreated", st.SkillsCreated),
		logger.Int("duplicates", st.Duplicates),
		logger.Int("leaderboardEntries", st.LeaderboardEntries),
		logger.Int("accuracy", overall.Accuracy),
		logger.Int("problemsSolved", overall.ProblemsSolved),
		logger.Duration("duration", st.Duration),
		logger.Float64("recordsPerSecond", perSecond))
}
