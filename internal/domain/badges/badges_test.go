package badges_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/okian/skillport/internal/domain/badges"
	"github.com/okian/skillport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func skills(n, proficiency, certified int) []model.Skill {
	out := make([]model.Skill, 0, n)
	for i := 0; i < n; i++ {
		s := model.Skill{SkillName: fmt.Sprintf("skill-%d", i), Proficiency: proficiency}
		if i < certified {
			s.CertificateURL = model.Str("https://certs.example/" + s.SkillName)
		}
		out = append(out, s)
	}
	return out
}

func names(bs []model.Badge) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.BadgeName)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 5, 6, 15, 4, 5, 0, time.UTC)

	Convey("Given a small skill set", t, func() {
		Convey("When no skill is expert or certified", func() {
			Convey("Then no badge is earned", func() {
				So(badges.Evaluate(skills(4, 50, 0), nil, "owner", now), ShouldBeEmpty)
			})
		})

		Convey("When three skills are expert", func() {
			out := badges.Evaluate(skills(4, 90, 0), nil, "owner", now)

			Convey("Then only the expert badge is earned", func() {
				So(names(out), ShouldResemble, []string{"Expert Master"})
				So(out[0].BadgeType, ShouldEqual, model.BadgeProficiency)
			})
		})

		Convey("When three skills carry certificates", func() {
			out := badges.Evaluate(skills(3, 60, 3), nil, "owner", now)

			Convey("Then only the certificate badge is earned", func() {
				So(names(out), ShouldResemble, []string{"Certified Professional"})
				So(out[0].BadgeType, ShouldEqual, model.BadgeCertificate)
			})
		})
	})

	Convey("Given five skills with three experts and three certificates", t, func() {
		set := skills(5, 95, 3)

		Convey("When nothing is held", func() {
			out := badges.Evaluate(set, nil, "owner", now)

			Convey("Then the collector, expert and certificate badges are awarded", func() {
				So(names(out), ShouldResemble, []string{"Bronze Collector", "Expert Master", "Certified Professional"})
				So(out[0].UserID, ShouldEqual, "owner")
				So(*out[0].DateAwarded, ShouldEqual, "2024-05-06")
				So(out[0].BadgeType, ShouldEqual, model.BadgeSkillCount)
				So(out[0].BadgeIcon, ShouldEqual, "🥉")
			})
		})

		Convey("When some badges are already held", func() {
			held := []model.Badge{{BadgeName: "Bronze Collector"}, {BadgeName: "Expert Master"}}
			out := badges.Evaluate(set, held, "owner", now)

			Convey("Then they are not awarded twice", func() {
				So(names(out), ShouldResemble, []string{"Certified Professional"})
			})
		})
	})

	Convey("Given ten intermediate skills", t, func() {
		out := badges.Evaluate(skills(10, 60, 0), nil, "owner", now)
		So(names(out), ShouldResemble, []string{"Bronze Collector", "Silver Collector"})
	})
}
