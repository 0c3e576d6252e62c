// Package types contains the view shapes the service returns for each screen.
package types

import (
	"strconv"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/internal/domain/ranking"
	"github.com/okian/skillport/internal/domain/stats"
)

// LeaderboardQuery selects how the member leaderboard is computed.
type LeaderboardQuery struct {
	Metric    ranking.Metric
	Direction ranking.Direction
	Window    filter.Window
	Class     string
	// Limit keeps the first Limit entries; zero keeps all.
	Limit int
}

// LeaderboardEntry is one ranked member.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	MemberID     string  `json:"memberId"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profileImage,omitempty"`
	stats.Stats
}

// Leaderboard is a ranked member table plus the selectors that produced it.
type Leaderboard struct {
	Metric    string             `json:"metric"`
	Direction string             `json:"direction"`
	Window    string             `json:"window"`
	Entries   []LeaderboardEntry `json:"entries"`
}

// MemberRow pairs a member with statistics recomputed from submissions.
type MemberRow struct {
	Member model.Member `json:"member"`
	Stats  stats.Stats  `json:"stats"`
}

// MemberCSVHeader is the header line of the member export.
var MemberCSVHeader = []string{
	"Name",
	"Username",
	"Email",
	"Problems Solved",
	"Total Submissions",
	"Accuracy (%)",
	"LeetCode Username",
	"Codeforces Username",
	"GFG Username",
}

// CSV renders the row in MemberCSVHeader column order.
func (r MemberRow) CSV() []string {
	return []string{
		r.Member.Name,
		r.Member.Username,
		r.Member.Email,
		strconv.Itoa(r.Stats.ProblemsSolved),
		strconv.Itoa(r.Stats.TotalSubmissions),
		strconv.Itoa(r.Stats.Accuracy),
		model.Deref(r.Member.LeetcodeUsername),
		model.Deref(r.Member.CodeforcesUsername),
		model.Deref(r.Member.GfgUsername),
	}
}

// Portfolio is the public showcase of the owner's skills.
type Portfolio struct {
	Owner   string          `json:"owner"`
	Slug    string          `json:"slug"`
	Summary stats.Portfolio `json:"summary"`
	Skills  []model.Skill   `json:"skills"`
	Badges  []model.Badge   `json:"badges"`
}
