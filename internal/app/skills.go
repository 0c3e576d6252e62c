package service

import (
	"context"

	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/badges"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/pkg/logger"
	"github.com/okian/skillport/pkg/metrics"
)

// awardingSkills evaluates badge milestones after every successful skill write.
type awardingSkills struct {
	repository.Store[model.Skill]
	svc *Service
}

func (a *awardingSkills) Create(ctx context.Context, rec model.Skill) (model.Skill, error) {
	out, err := a.Store.Create(ctx, rec)
	if err != nil {
		return out, err
	}
	a.svc.awardBadges(ctx)
	return out, nil
}

func (a *awardingSkills) Update(ctx context.Context, id string, rec model.Skill) (model.Skill, error) {
	out, err := a.Store.Update(ctx, id, rec)
	if err != nil {
		return out, err
	}
	a.svc.awardBadges(ctx)
	return out, nil
}

// AwardBadges evaluates the owner's skills and stores every newly reached
// badge. It returns the badges created by this call. Calls are serialised so
// a milestone reached by concurrent writes is stored once.
func (s *Service) AwardBadges(ctx context.Context) ([]model.Badge, error) {
	s.awardMu.Lock()
	defer s.awardMu.Unlock()

	skills, err := s.stores.Skills.List(ctx, "")
	if err != nil {
		return nil, err
	}
	held, err := s.stores.Badges.Filter(ctx, map[string]any{"userId": s.ownerID})
	if err != nil {
		return nil, err
	}

	var created []model.Badge
	for _, b := range badges.Evaluate(skills, held, s.ownerID, s.now()) {
		saved, err := s.stores.Badges.Create(ctx, b)
		if err != nil {
			return created, err
		}
		metrics.RecordBadgeAwarded(saved.BadgeName)
		s.logger.Info(ctx, "badge awarded",
			logger.String("badge", saved.BadgeName),
			logger.String("owner", s.ownerID),
		)
		created = append(created, saved)
	}
	return created, nil
}

// awardBadges runs AwardBadges after a skill write. The write has already
// succeeded, so failures are logged rather than returned.
func (s *Service) awardBadges(ctx context.Context) {
	if _, err := s.AwardBadges(ctx); err != nil {
		metrics.RecordErrorByComponent("badges", "award")
		s.logger.Warn(ctx, "badge evaluation failed", logger.Error(err))
	}
}
