package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/okian/skillport/internal/domain/model"
)

// profile shapes the submissions of one member.
type profile struct {
	acceptRate float64
	minScore   int
	maxScore   int
	minTime    int
	maxTime    int
}

// Performer profiles, from strongest to weakest.
var profiles = []profile{
	{acceptRate: 0.9, minScore: 80, maxScore: 100, minTime: 5, maxTime: 20},
	{acceptRate: 0.7, minScore: 60, maxScore: 90, minTime: 10, maxTime: 40},
	{acceptRate: 0.5, minScore: 30, maxScore: 70, minTime: 20, maxTime: 60},
	{acceptRate: 0.25, minScore: 10, maxScore: 40, minTime: 30, maxTime: 90},
}

var (
	firstNames = []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Frances", "Ken", "Radia", "Linus"}
	problems   = []string{"two-sum", "lru-cache", "word-ladder", "edit-distance", "median-of-arrays",
		"course-schedule", "coin-change", "trapping-rain-water", "n-queens", "merge-intervals"}
	platforms = []string{"LeetCode", "Codeforces", "GFG"}
	languages = []model.Language{model.LanguageGo, model.LanguagePython, model.LanguageCPP, model.LanguageJava}
	verdicts  = []model.Verdict{model.VerdictWrongAnswer, model.VerdictTimeLimit, model.VerdictRuntimeError}
	catalogue = []struct {
		name     string
		category model.SkillCategory
	}{
		{"Go", model.SkillTechnical}, {"SQL", model.SkillTechnical}, {"Kubernetes", model.SkillTechnical},
		{"Public Speaking", model.SkillSoft}, {"Spanish", model.SkillLanguage}, {"Sketching", model.SkillCreative},
		{"Negotiation", model.SkillBusiness}, {"Rust", model.SkillTechnical}, {"Mentoring", model.SkillSoft},
		{"Typescript", model.SkillTechnical}, {"German", model.SkillLanguage}, {"Photography", model.SkillCreative},
	}
)

// generator produces deterministic records for a seed.
type generator struct {
	rng *rand.Rand
	now time.Time
}

func newGenerator(seed uint64, now time.Time) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x5eed)), now: now}
}

func (g *generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// members creates n members with unique usernames.
func (g *generator) members(n int) []model.Member {
	out := make([]model.Member, n)
	for i := range out {
		first := firstNames[g.rng.IntN(len(firstNames))]
		username := fmt.Sprintf("%s-%03d", strings.ToLower(first), i)
		out[i] = model.Member{
			Name:     fmt.Sprintf("%s %03d", first, i),
			Username: username,
			Email:    username + "@example.com",
		}
		if g.rng.IntN(2) == 0 {
			out[i].LeetcodeUsername = model.Str(username + "_lc")
		}
	}
	return out
}

// submissions creates up to perMember submissions for every member id.
func (g *generator) submissions(memberIDs, usernames []string, perMember int) []model.Submission {
	var out []model.Submission
	for i, id := range memberIDs {
		p := profiles[g.rng.IntN(len(profiles))]
		n := g.between(0, perMember)
		for range n {
			sub := model.Submission{
				MemberID:       id,
				MemberUsername: usernames[i],
				ProblemName:    problems[g.rng.IntN(len(problems))],
				Language:       languages[g.rng.IntN(len(languages))],
				Platform:       model.Str(platforms[g.rng.IntN(len(platforms))]),
				Attempts:       g.between(1, 3),
			}
			ts := g.now.Add(-time.Duration(g.between(0, 60*24)) * time.Hour)
			sub.SubmissionTime = &ts
			if g.rng.Float64() < p.acceptRate {
				sub.Verdict = model.VerdictAccepted
				// Whole numbers keep score sums exact in any summation order.
				sub.Score = model.Num(float64(g.between(p.minScore, p.maxScore)))
				sub.TimeTaken = model.Num(float64(g.between(p.minTime, p.maxTime)))
			} else {
				sub.Verdict = verdicts[g.rng.IntN(len(verdicts))]
			}
			out = append(out, sub)
		}
	}
	return out
}

// skills creates n owner skills, cycling the catalogue.
func (g *generator) skills(n int) []model.Skill {
	out := make([]model.Skill, n)
	for i := range out {
		s := catalogue[i%len(catalogue)]
		name := s.name
		if i >= len(catalogue) {
			name = fmt.Sprintf("%s %d", s.name, i/len(catalogue)+1)
		}
		out[i] = model.Skill{
			SkillName:   name,
			Category:    s.category,
			Proficiency: g.between(20, 100),
			Tags:        []string{strings.ToLower(string(s.category))},
		}
	}
	return out
}
