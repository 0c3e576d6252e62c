package filter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sub(id, member, problem string, v model.Verdict, at *time.Time) model.Submission {
	return model.Submission{
		Record:         model.Record{ID: id},
		MemberID:       member,
		MemberUsername: "user-" + member,
		ProblemName:    problem,
		Verdict:        v,
		SubmissionTime: at,
	}
}

func ids(subs []model.Submission) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	Convey("Given a set of submissions", t, func() {
		subs := []model.Submission{
			sub("1", "A", "Two Sum", model.VerdictAccepted, nil),
			sub("2", "B", "Three Sum", model.VerdictWrongAnswer, nil),
			sub("3", "A", "Binary Tree", model.VerdictAccepted, nil),
		}
		subs[0].Platform = model.Str("LeetCode")

		Convey("When no predicates are given", func() {
			out := filter.Apply(subs)

			Convey("Then every record is returned in a fresh slice", func() {
				So(ids(out), ShouldResemble, []string{"1", "2", "3"})
				out[0].ProblemName = "changed"
				So(subs[0].ProblemName, ShouldEqual, "Two Sum")
			})
		})

		Convey("When searching case-insensitively", func() {
			out := filter.SubmissionCriteria{Search: "  sUm "}.Apply(subs)
			So(ids(out), ShouldResemble, []string{"1", "2"})
		})

		Convey("When searching the username field", func() {
			out := filter.SubmissionCriteria{Search: "user-b"}.Apply(subs)
			So(ids(out), ShouldResemble, []string{"2"})
		})

		Convey("When categorical criteria say all", func() {
			out := filter.SubmissionCriteria{Member: "All", Verdict: "all", Platform: ""}.Apply(subs)
			So(len(out), ShouldEqual, 3)
		})

		Convey("When criteria are combined", func() {
			out := filter.SubmissionCriteria{Member: "A", Verdict: "AC", Search: "tree"}.Apply(subs)
			So(ids(out), ShouldResemble, []string{"3"})
		})

		Convey("When filtering on an optional field", func() {
			out := filter.SubmissionCriteria{Platform: "LeetCode"}.Apply(subs)

			Convey("Then records without the field are excluded", func() {
				So(ids(out), ShouldResemble, []string{"1"})
			})
		})

		Convey("When the predicate order changes", func() {
			a := filter.Apply(subs,
				filter.Equals("A", func(s model.Submission) string { return s.MemberID }),
				filter.Equals("AC", func(s model.Submission) model.Verdict { return s.Verdict }))
			b := filter.Apply(subs,
				filter.Equals("AC", func(s model.Submission) model.Verdict { return s.Verdict }),
				filter.Equals("A", func(s model.Submission) string { return s.MemberID }))
			So(ids(a), ShouldResemble, ids(b))
		})
	})
}

func TestWindow(t *testing.T) {
	Convey("Given a reference time", t, func() {
		now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
		at := func(d time.Duration) *time.Time { ts := now.Add(d); return &ts }
		subs := []model.Submission{
			sub("recent", "A", "P", model.VerdictAccepted, at(-24*time.Hour)),
			sub("edge", "A", "P", model.VerdictAccepted, at(-7*24*time.Hour)),
			sub("old", "A", "P", model.VerdictAccepted, at(-40*24*time.Hour)),
			sub("future", "A", "P", model.VerdictAccepted, at(time.Hour)),
			sub("untimed", "A", "P", model.VerdictAccepted, nil),
		}

		Convey("When parsing window names", func() {
			for _, s := range []string{"", "none", "ALL"} {
				w, err := filter.ParseWindow(s)
				So(err, ShouldBeNil)
				So(w, ShouldEqual, filter.WindowNone)
			}
			w, err := filter.ParseWindow("Month")
			So(err, ShouldBeNil)
			So(w, ShouldEqual, filter.WindowMonth)

			_, err = filter.ParseWindow("decade")
			So(errors.Is(err, filter.ErrUnknownWindow), ShouldBeTrue)
		})

		Convey("When the window is none", func() {
			out := filter.SubmissionCriteria{Window: filter.WindowNone, Now: now}.Apply(subs)
			So(len(out), ShouldEqual, 5)
		})

		Convey("When the window is a week", func() {
			out := filter.SubmissionCriteria{Window: filter.WindowWeek, Now: now}.Apply(subs)

			Convey("Then both bounds are inclusive and untimed records are dropped", func() {
				So(ids(out), ShouldResemble, []string{"recent", "edge"})
			})
		})

		Convey("When the window is a month", func() {
			start, ok := filter.WindowMonth.Start(now)
			So(ok, ShouldBeTrue)
			So(start.Equal(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)), ShouldBeTrue)

			out := filter.SubmissionCriteria{Window: filter.WindowMonth, Now: now}.Apply(subs)
			So(ids(out), ShouldResemble, []string{"recent", "edge"})
		})

		Convey("When the window is a year", func() {
			out := filter.SubmissionCriteria{Window: filter.WindowYear, Now: now}.Apply(subs)
			So(ids(out), ShouldResemble, []string{"recent", "edge", "old"})
		})
	})
}

func TestMembers(t *testing.T) {
	Convey("Given members", t, func() {
		members := []model.Member{
			{Record: model.Record{ID: "1"}, Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"},
			{Record: model.Record{ID: "2"}, Name: "Alan Turing", Username: "alan", Email: "turing@example.org"},
		}

		Convey("When searching by email fragment", func() {
			out := filter.MemberCriteria{Search: "EXAMPLE.ORG"}.Apply(members)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "2")
		})

		Convey("When nothing matches", func() {
			out := filter.MemberCriteria{Search: "grace"}.Apply(members)
			So(out, ShouldNotBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestSkills(t *testing.T) {
	Convey("Given skills", t, func() {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		skills := []model.Skill{
			{Record: model.Record{ID: "go", UpdatedAt: base}, SkillName: "Go", Category: model.SkillTechnical, Proficiency: 85, Tags: []string{"backend"}},
			{Record: model.Record{ID: "talk", UpdatedAt: base.Add(time.Hour)}, SkillName: "public speaking", Category: model.SkillSoft, Proficiency: 40},
			{Record: model.Record{ID: "es", UpdatedAt: base.Add(2 * time.Hour)}, SkillName: "Spanish", Category: model.SkillLanguage, Proficiency: 55},
		}

		Convey("When searching by tag", func() {
			out := filter.SkillCriteria{Search: "BACK"}.Apply(skills)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "go")
		})

		Convey("When searching by category name", func() {
			out := filter.SkillCriteria{Search: "soft"}.Apply(skills)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "talk")
		})

		Convey("When filtering by proficiency level", func() {
			level, err := filter.ParseLevel("beginner")
			So(err, ShouldBeNil)
			out := filter.SkillCriteria{Level: level}.Apply(skills)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "talk")

			level, err = filter.ParseLevel("all")
			So(err, ShouldBeNil)
			So(level, ShouldEqual, model.Level(""))

			_, err = filter.ParseLevel("master")
			So(errors.Is(err, filter.ErrUnknownLevel), ShouldBeTrue)
		})

		Convey("When sorting", func() {
			out := filter.SkillCriteria{Sort: filter.SortUpdated}.Apply(skills)
			So(out[0].ID, ShouldEqual, "es")
			So(out[2].ID, ShouldEqual, "go")

			out = filter.SkillCriteria{Sort: filter.SortProficiency}.Apply(skills)
			So(out[0].ID, ShouldEqual, "go")
			So(out[2].ID, ShouldEqual, "talk")

			out = filter.SkillCriteria{Sort: filter.SortAlphabetical}.Apply(skills)
			So(out[0].ID, ShouldEqual, "go")
			So(out[1].ID, ShouldEqual, "talk")

			So(skills[0].ID, ShouldEqual, "go")
			So(skills[2].ID, ShouldEqual, "es")
		})

		Convey("When parsing sort names", func() {
			s, err := filter.ParseSkillSort("")
			So(err, ShouldBeNil)
			So(s, ShouldEqual, filter.SortUpdated)

			_, err = filter.ParseSkillSort("random")
			So(errors.Is(err, filter.ErrUnknownSort), ShouldBeTrue)
		})
	})
}

func TestClassesAndTasks(t *testing.T) {
	Convey("Given classes with nested problems", t, func() {
		classes := []model.ClassContest{
			{Record: model.Record{ID: "c1"}, ClassName: "Graphs 101", Problems: []model.Problem{
				{ProblemName: "Course Schedule", Platform: model.PlatformLeetCode, Category: model.ProblemGraph},
			}},
			{Record: model.Record{ID: "c2"}, ClassName: "DP Night", ContentCovered: "knapsack", Problems: []model.Problem{
				{ProblemName: "Coin Change", Platform: model.PlatformCodeforces, Category: model.ProblemDP},
			}},
			{Record: model.Record{ID: "c3"}, ClassName: "Intro"},
		}

		Convey("When searching problem names", func() {
			out := filter.ClassCriteria{Search: "coin"}.Apply(classes)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "c2")
		})

		Convey("When filtering by platform of any problem", func() {
			out := filter.ClassCriteria{Platform: "LeetCode"}.Apply(classes)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "c1")
		})

		Convey("When filtering by category with no restriction", func() {
			out := filter.ClassCriteria{Category: "all"}.Apply(classes)
			So(len(out), ShouldEqual, 3)
		})
	})

	Convey("Given tasks", t, func() {
		tasks := []model.Task{
			{Record: model.Record{ID: "t1"}, Title: "Read CLRS", Category: model.TaskReading, Status: model.StatusTodo, Priority: model.PriorityLow},
			{Record: model.Record{ID: "t2"}, Title: "Graph drills", Description: model.Str("BFS and DFS"), Category: model.TaskDSA, Status: model.StatusDone, Priority: model.PriorityHigh},
		}

		Convey("When searching descriptions", func() {
			out := filter.TaskCriteria{Search: "dfs"}.Apply(tasks)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "t2")
		})

		Convey("When filtering by status and priority", func() {
			out := filter.TaskCriteria{Status: "todo", Priority: "All"}.Apply(tasks)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "t1")
		})
	})
}
