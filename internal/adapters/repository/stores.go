package repository

import (
	"fmt"

	"github.com/okian/skillport/internal/domain/model"
	"gorm.io/gorm"
)

// Entity names used in metrics, logs and routes.
const (
	EntityMembers      = "members"
	EntitySubmissions  = "submissions"
	EntitySkills       = "skills"
	EntityClasses      = "classes"
	EntityTasks        = "tasks"
	EntityCertificates = "certificates"
	EntityBadges       = "badges"
	EntityProjects     = "projects"
	EntityPosts        = "posts"
	EntityCommunity    = "community-tasks"
)

// Stores bundles one store per entity.
type Stores struct {
	Members      Store[model.Member]
	Submissions  Store[model.Submission]
	Skills       Store[model.Skill]
	Classes      Store[model.ClassContest]
	Tasks        Store[model.Task]
	Certificates Store[model.Certificate]
	Badges       Store[model.Badge]
	Projects     Store[model.Project]
	Posts        Store[model.Post]
	Community    Store[model.CommunityTask]
}

// NewMemoryStores returns instrumented in-memory stores.
func NewMemoryStores(opts ...Option) Stores {
	return Stores{
		Members:      Instrument(EntityMembers, Store[model.Member](NewMemoryStore[model.Member](opts...))),
		Submissions:  Instrument(EntitySubmissions, Store[model.Submission](NewMemoryStore[model.Submission](opts...))),
		Skills:       Instrument(EntitySkills, Store[model.Skill](NewMemoryStore[model.Skill](opts...))),
		Classes:      Instrument(EntityClasses, Store[model.ClassContest](NewMemoryStore[model.ClassContest](opts...))),
		Tasks:        Instrument(EntityTasks, Store[model.Task](NewMemoryStore[model.Task](opts...))),
		Certificates: Instrument(EntityCertificates, Store[model.Certificate](NewMemoryStore[model.Certificate](opts...))),
		Badges:       Instrument(EntityBadges, Store[model.Badge](NewMemoryStore[model.Badge](opts...))),
		Projects:     Instrument(EntityProjects, Store[model.Project](NewMemoryStore[model.Project](opts...))),
		Posts:        Instrument(EntityPosts, Store[model.Post](NewMemoryStore[model.Post](opts...))),
		Community:    Instrument(EntityCommunity, Store[model.CommunityTask](NewMemoryStore[model.CommunityTask](opts...))),
	}
}

// NewGormStores migrates db and returns instrumented gorm stores.
func NewGormStores(db *gorm.DB, opts ...Option) (Stores, error) {
	if err := Migrate(db); err != nil {
		return Stores{}, fmt.Errorf("migrate: %w", err)
	}

	var (
		s   Stores
		err error
	)
	if s.Members, err = gormStore[model.Member](db, EntityMembers, opts); err != nil {
		return Stores{}, err
	}
	if s.Submissions, err = gormStore[model.Submission](db, EntitySubmissions, opts); err != nil {
		return Stores{}, err
	}
	if s.Skills, err = gormStore[model.Skill](db, EntitySkills, opts); err != nil {
		return Stores{}, err
	}
	if s.Classes, err = gormStore[model.ClassContest](db, EntityClasses, opts); err != nil {
		return Stores{}, err
	}
	if s.Tasks, err = gormStore[model.Task](db, EntityTasks, opts); err != nil {
		return Stores{}, err
	}
	if s.Certificates, err = gormStore[model.Certificate](db, EntityCertificates, opts); err != nil {
		return Stores{}, err
	}
	if s.Badges, err = gormStore[model.Badge](db, EntityBadges, opts); err != nil {
		return Stores{}, err
	}
	if s.Projects, err = gormStore[model.Project](db, EntityProjects, opts); err != nil {
		return Stores{}, err
	}
	if s.Posts, err = gormStore[model.Post](db, EntityPosts, opts); err != nil {
		return Stores{}, err
	}
	if s.Community, err = gormStore[model.CommunityTask](db, EntityCommunity, opts); err != nil {
		return Stores{}, err
	}
	return s, nil
}

func gormStore[T any, P model.Entity[T]](db *gorm.DB, entity string, opts []Option) (Store[T], error) {
	g, err := NewGormStore[T, P](db, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s store: %w", entity, err)
	}
	return Instrument[T](entity, g), nil
}
