// Package badges evaluates skill milestones into achievement badges.
package badges

import (
	"time"

	"github.com/okian/skillport/internal/domain/model"
)

// DateLayout is the calendar-date format of Badge.DateAwarded.
const DateLayout = "2006-01-02"

// Rule is one milestone a skill set can reach.
type Rule struct {
	Name     string
	Icon     string
	Criteria string
	Type     model.BadgeType
	Earned   func([]model.Skill) bool
}

// Rules is the built-in milestone set, in award order.
var Rules = []Rule{
	{
		Name: "Bronze Collector", Icon: "🥉", Criteria: "Earned 5+ skills", Type: model.BadgeSkillCount,
		Earned: func(s []model.Skill) bool { return len(s) >= 5 },
	},
	{
		Name: "Silver Collector", Icon: "🥈", Criteria: "Earned 10+ skills", Type: model.BadgeSkillCount,
		Earned: func(s []model.Skill) bool { return len(s) >= 10 },
	},
	{
		Name: "Expert Master", Icon: "🎯", Criteria: "Expert level in 3+ skills", Type: model.BadgeProficiency,
		Earned: func(s []model.Skill) bool {
			return count(s, func(k model.Skill) bool { return k.Proficiency >= 90 }) >= 3
		},
	},
	{
		Name: "Certified Professional", Icon: "📜", Criteria: "Uploaded 3+ certificates", Type: model.BadgeCertificate,
		Earned: func(s []model.Skill) bool { return count(s, model.Skill.Certified) >= 3 },
	},
}

func count(skills []model.Skill, pred func(model.Skill) bool) int {
	n := 0
	for _, s := range skills {
		if pred(s) {
			n++
		}
	}
	return n
}

// Evaluate returns the badges newly earned by skills for owner. A rule whose
// badge name is already held is never awarded again.
func Evaluate(skills []model.Skill, held []model.Badge, owner string, now time.Time) []model.Badge {
	have := make(map[string]struct{}, len(held))
	for _, b := range held {
		have[b.BadgeName] = struct{}{}
	}
	date := now.Format(DateLayout)

	var out []model.Badge
	for _, r := range Rules {
		if _, ok := have[r.Name]; ok || !r.Earned(skills) {
			continue
		}
		d := date
		out = append(out, model.Badge{
			BadgeName:   r.Name,
			BadgeIcon:   r.Icon,
			Criteria:    r.Criteria,
			BadgeType:   r.Type,
			DateAwarded: &d,
			UserID:      owner,
		})
	}
	return out
}
