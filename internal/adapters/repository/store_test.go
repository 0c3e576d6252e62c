package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// tick returns a clock advancing one second per call so creation order is
// visible in timestamps.
func tick() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func memorySkills() repository.Store[model.Skill] {
	return repository.NewMemoryStore[model.Skill](
		repository.WithClock(tick()),
		repository.WithIDGenerator(sequence()),
	)
}

func gormSkills(t *testing.T) repository.Store[model.Skill] {
	db, err := repository.Open(repository.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s, err := repository.NewGormStore[model.Skill](db,
		repository.WithClock(tick()),
		repository.WithIDGenerator(sequence()),
	)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

func skillNames(skills []model.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.SkillName)
	}
	return out
}

func storeSuite(newStore func() repository.Store[model.Skill]) func() {
	return func() {
		ctx := context.Background()
		s := newStore()

		seed := []model.Skill{
			{SkillName: "Go", Category: model.SkillTechnical, Proficiency: 80, Tags: []string{"backend"}, Notes: model.Str("daily")},
			{SkillName: "Speaking", Category: model.SkillSoft, Proficiency: 40},
			{SkillName: "SQL", Proficiency: 65, Notes: model.Str("weekly")},
		}
		created := make([]model.Skill, 0, len(seed))
		for _, rec := range seed {
			c, err := s.Create(ctx, rec)
			So(err, ShouldBeNil)
			created = append(created, c)
		}

		Convey("When records are created", func() {
			Convey("Then ids, timestamps and defaults are assigned", func() {
				So(created[0].ID, ShouldEqual, "id-001")
				So(created[2].ID, ShouldEqual, "id-003")
				So(created[0].CreatedAt.IsZero(), ShouldBeFalse)
				So(created[0].UpdatedAt.Equal(created[0].CreatedAt), ShouldBeTrue)
				So(created[2].Category, ShouldEqual, model.SkillTechnical)
			})
		})

		Convey("When listing without a sort", func() {
			out, err := s.List(ctx, "")
			So(err, ShouldBeNil)
			So(skillNames(out), ShouldResemble, []string{"Go", "Speaking", "SQL"})
			So([]string(out[0].Tags), ShouldResemble, []string{"backend"})
		})

		Convey("When listing sorted by a field", func() {
			asc, err := s.List(ctx, "proficiency")
			So(err, ShouldBeNil)
			So(skillNames(asc), ShouldResemble, []string{"Speaking", "SQL", "Go"})

			desc, err := s.List(ctx, "-proficiency")
			So(err, ShouldBeNil)
			So(skillNames(desc), ShouldResemble, []string{"Go", "SQL", "Speaking"})
		})

		Convey("When sorting by an optional field", func() {
			out, err := s.List(ctx, "-notes")
			So(err, ShouldBeNil)

			Convey("Then absent values trail", func() {
				So(skillNames(out), ShouldResemble, []string{"SQL", "Go", "Speaking"})
			})
		})

		Convey("When sorting by an unknown field", func() {
			_, err := s.List(ctx, "-popularity")
			So(errors.Is(err, repository.ErrInvalidSort), ShouldBeTrue)
		})

		Convey("When filtering by exact field values", func() {
			out, err := s.Filter(ctx, map[string]any{"category": "Technical"})
			So(err, ShouldBeNil)
			So(skillNames(out), ShouldResemble, []string{"Go", "SQL"})

			out, err = s.Filter(ctx, map[string]any{"category": "Technical", "proficiency": 65})
			So(err, ShouldBeNil)
			So(skillNames(out), ShouldResemble, []string{"SQL"})

			out, err = s.Filter(ctx, nil)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 3)

			_, err = s.Filter(ctx, map[string]any{"owner": "x"})
			So(errors.Is(err, repository.ErrInvalidCriteria), ShouldBeTrue)
		})

		Convey("When getting a record", func() {
			got, err := s.Get(ctx, created[1].ID)
			So(err, ShouldBeNil)
			So(got.SkillName, ShouldEqual, "Speaking")

			_, err = s.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When updating a record", func() {
			next := created[1]
			next.Proficiency = 55
			updated, err := s.Update(ctx, created[1].ID, next)
			So(err, ShouldBeNil)

			Convey("Then the creation time is kept and the change persists", func() {
				So(updated.ID, ShouldEqual, created[1].ID)
				So(updated.CreatedAt.Equal(created[1].CreatedAt), ShouldBeTrue)
				got, err := s.Get(ctx, created[1].ID)
				So(err, ShouldBeNil)
				So(got.Proficiency, ShouldEqual, 55)
			})

			Convey("Then unknown ids are rejected", func() {
				_, err := s.Update(ctx, "missing", next)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting a record", func() {
			So(s.Delete(ctx, created[0].ID), ShouldBeNil)

			Convey("Then it is gone", func() {
				out, err := s.List(ctx, "")
				So(err, ShouldBeNil)
				So(skillNames(out), ShouldResemble, []string{"Speaking", "SQL"})
				So(errors.Is(s.Delete(ctx, created[0].ID), repository.ErrNotFound), ShouldBeTrue)
			})
		})
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, storeSuite(memorySkills))

	Convey("Given a memory store and a caller holding a record", t, func() {
		ctx := context.Background()
		s := memorySkills()
		c, err := s.Create(ctx, model.Skill{SkillName: "Go", Tags: []string{"a"}})
		So(err, ShouldBeNil)

		Convey("When the caller mutates its copy", func() {
			c.Tags[0] = "mutated"

			Convey("Then the stored record is unaffected", func() {
				got, err := s.Get(ctx, c.ID)
				So(err, ShouldBeNil)
				So(got.Tags[0], ShouldEqual, "a")
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := memorySkills().List(ctx, "")
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestGormStore(t *testing.T) {
	Convey("Given a gorm store on sqlite", t, storeSuite(func() repository.Store[model.Skill] {
		return gormSkills(t)
	}))

	Convey("Given an unknown driver", t, func() {
		_, err := repository.Open("oracle", "dsn")
		So(errors.Is(err, repository.ErrUnknownDriver), ShouldBeTrue)
	})
}

func TestStores(t *testing.T) {
	Convey("Given the memory store bundle", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStores()

		Convey("When creating through the instrumented wrapper", func() {
			m, err := s.Members.Create(ctx, model.Member{Name: "Ada", Username: "ada", Email: "ada@example.com"})
			So(err, ShouldBeNil)
			So(m.ID, ShouldNotBeEmpty)

			out, err := s.Members.Filter(ctx, map[string]any{"username": "ada"})
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)

			_, err = s.Tasks.Get(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given the gorm store bundle", t, func() {
		db, err := repository.Open(repository.DriverSQLite, ":memory:")
		So(err, ShouldBeNil)
		sqlDB, err := db.DB()
		So(err, ShouldBeNil)
		sqlDB.SetMaxOpenConns(1)

		s, err := repository.NewGormStores(db)
		So(err, ShouldBeNil)

		Convey("When a class with nested problems round-trips", func() {
			ctx := context.Background()
			c, err := s.Classes.Create(ctx, model.ClassContest{
				Date:      "2024-02-01",
				ClassName: "Graphs",
				Problems:  []model.Problem{{ProblemName: "BFS", Platform: model.PlatformLeetCode, Tags: []string{"graph"}}},
			})
			So(err, ShouldBeNil)

			got, err := s.Classes.Get(ctx, c.ID)
			So(err, ShouldBeNil)
			So(got.Problems, ShouldHaveLength, 1)
			So(got.Problems[0].Platform, ShouldEqual, model.PlatformLeetCode)
			So(got.Problems[0].Tags, ShouldResemble, []string{"graph"})
		})

		Convey("When showcase projects are stored", func() {
			ctx := context.Background()
			_, err := s.Projects.Create(ctx, model.Project{Title: "Judge", Description: "online judge",
				GithubURL: model.Str("https://github.com/x/judge"), Tags: []string{"go", "sqlite"}, Featured: true})
			So(err, ShouldBeNil)
			_, err = s.Projects.Create(ctx, model.Project{Title: "Notes", Description: "notes"})
			So(err, ShouldBeNil)

			got, err := s.Projects.Filter(ctx, map[string]any{"featured": true})
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So([]string(got[0].Tags), ShouldResemble, []string{"go", "sqlite"})
			So(*got[0].GithubURL, ShouldEqual, "https://github.com/x/judge")
			So(got[0].Status, ShouldEqual, model.ProjectPlanning)
		})
	})
}

func TestParseSort(t *testing.T) {
	Convey("Given sort specs", t, func() {
		So(repository.ParseSort("-dateAwarded"), ShouldResemble, repository.Sort{Field: "dateAwarded", Desc: true})
		So(repository.ParseSort(" name "), ShouldResemble, repository.Sort{Field: "name"})
		So(repository.ParseSort(""), ShouldResemble, repository.Sort{})
	})
}
