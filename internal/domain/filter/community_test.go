package filter_test

import (
	"errors"
	"testing"

	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProjectCriteria(t *testing.T) {
	Convey("Given projects in several stages", t, func() {
		projects := []model.Project{
			{Record: model.Record{ID: "p1"}, Title: "Judge", Description: "online judge", Status: model.ProjectDeployed, Featured: true},
			{Record: model.Record{ID: "p2"}, Title: "Notes", Description: "markdown notes", Status: model.ProjectPlanning,
				Tags: []string{"Go", "sqlite"}},
			{Record: model.Record{ID: "p3"}, Title: "Tracker", Description: "habit tracker", Status: model.ProjectDeployed},
		}
		show := func(sel string) []string {
			v, err := filter.ParseProjectShow(sel)
			So(err, ShouldBeNil)
			out := filter.ProjectCriteria{Show: v}.Apply(projects)
			got := make([]string, 0, len(out))
			for _, p := range out {
				got = append(got, p.ID)
			}
			return got
		}

		Convey("When showing all", func() {
			So(show("all"), ShouldResemble, []string{"p1", "p2", "p3"})
			So(show(""), ShouldResemble, []string{"p1", "p2", "p3"})
		})

		Convey("When showing featured projects", func() {
			So(show("featured"), ShouldResemble, []string{"p1"})
		})

		Convey("When showing one status", func() {
			So(show("deployed"), ShouldResemble, []string{"p1", "p3"})
			So(show("completed"), ShouldBeEmpty)
		})

		Convey("When searching tags", func() {
			out := filter.ProjectCriteria{Search: "SQLITE"}.Apply(projects)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "p2")
		})

		Convey("When the selector is unknown", func() {
			_, err := filter.ParseProjectShow("archived")
			So(errors.Is(err, filter.ErrUnknownSelector), ShouldBeTrue)
		})
	})
}

func TestPostAndCommunityCriteria(t *testing.T) {
	Convey("Given posts", t, func() {
		posts := []model.Post{
			{Record: model.Record{ID: "a"}, Title: "Solved 100", Content: "milestone", Type: model.PostAchievement},
			{Record: model.Record{ID: "b"}, Title: "Week 3", Content: "learned tries", Type: model.PostLearning},
		}

		Convey("When filtering by type and content", func() {
			So(filter.PostCriteria{Type: "learning"}.Apply(posts)[0].ID, ShouldEqual, "b")
			So(filter.PostCriteria{Search: "MILESTONE", Type: "all"}.Apply(posts)[0].ID, ShouldEqual, "a")
			So(filter.PostCriteria{Search: "milestone", Type: "learning"}.Apply(posts), ShouldBeEmpty)
		})
	})

	Convey("Given community tasks", t, func() {
		tasks := []model.CommunityTask{
			{Record: model.Record{ID: "c1"}, Title: "Two Sum", Platform: model.TaskPlatformLeetCode, Difficulty: model.DifficultyEasy},
			{Record: model.Record{ID: "c2"}, Title: "Ship a CLI", Description: model.Str("publish on GitHub"),
				Platform: model.TaskPlatformGitHub, Difficulty: model.DifficultyHard},
		}

		Convey("When filtering by platform and difficulty", func() {
			out := filter.CommunityTaskCriteria{Platform: "GitHub", Difficulty: "Hard"}.Apply(tasks)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "c2")
			So(filter.CommunityTaskCriteria{Platform: "GitHub", Difficulty: "Easy"}.Apply(tasks), ShouldBeEmpty)
		})

		Convey("When searching a description", func() {
			out := filter.CommunityTaskCriteria{Search: "publish"}.Apply(tasks)
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "c2")
		})
	})
}

func TestCertificateCriteria(t *testing.T) {
	Convey("Given issued and pending certificates", t, func() {
		certs := []model.Certificate{
			{Record: model.Record{ID: "x1"}, MemberID: "m1", MemberName: "Ada", ClassID: "c1", ClassName: "Graphs", IsIssued: true,
				CertificateType: model.CertificateClassCompletion},
			{Record: model.Record{ID: "x2"}, MemberID: "m2", MemberName: "Bob", ClassID: "c1", ClassName: "Graphs",
				CertificateType: model.CertificateContestWinner},
		}
		apply := func(c filter.CertificateCriteria) []model.Certificate { return c.Apply(certs) }

		Convey("When selecting by issue state", func() {
			state, err := filter.ParseIssueState("Pending")
			So(err, ShouldBeNil)
			out := apply(filter.CertificateCriteria{State: state})
			So(len(out), ShouldEqual, 1)
			So(out[0].ID, ShouldEqual, "x2")
			So(apply(filter.CertificateCriteria{State: filter.Issued})[0].ID, ShouldEqual, "x1")
			So(apply(filter.CertificateCriteria{}), ShouldHaveLength, 2)
		})

		Convey("When selecting by member, class, type and name", func() {
			So(apply(filter.CertificateCriteria{Member: "m1"})[0].ID, ShouldEqual, "x1")
			So(apply(filter.CertificateCriteria{Class: "c1"}), ShouldHaveLength, 2)
			So(apply(filter.CertificateCriteria{Type: "Contest Winner"})[0].ID, ShouldEqual, "x2")
			So(apply(filter.CertificateCriteria{Search: "bob"})[0].ID, ShouldEqual, "x2")
		})

		Convey("When the state is unknown", func() {
			_, err := filter.ParseIssueState("revoked")
			So(errors.Is(err, filter.ErrUnknownSelector), ShouldBeTrue)
		})
	})
}
