package service

import (
	"context"
	"time"

	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
)

// SearchProjects filters the project showcase, newest first.
func (s *Service) SearchProjects(ctx context.Context, c filter.ProjectCriteria) ([]model.Project, error) {
	const view = "projects"
	defer s.observe(view, time.Now())

	projects, err := snapshot(ctx, repository.EntityProjects, s.stores.Projects, "-created_date")
	if err != nil {
		return nil, err
	}
	return c.Apply(projects), nil
}

// SearchPosts filters the journal, newest first.
func (s *Service) SearchPosts(ctx context.Context, c filter.PostCriteria) ([]model.Post, error) {
	const view = "posts"
	defer s.observe(view, time.Now())

	posts, err := snapshot(ctx, repository.EntityPosts, s.stores.Posts, "-created_date")
	if err != nil {
		return nil, err
	}
	return c.Apply(posts), nil
}

// SearchCommunityTasks filters the community challenge board, newest first.
func (s *Service) SearchCommunityTasks(ctx context.Context, c filter.CommunityTaskCriteria) ([]model.CommunityTask, error) {
	const view = "community_tasks"
	defer s.observe(view, time.Now())

	tasks, err := snapshot(ctx, repository.EntityCommunity, s.stores.Community, "-created_date")
	if err != nil {
		return nil, err
	}
	return c.Apply(tasks), nil
}
