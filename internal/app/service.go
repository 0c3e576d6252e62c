// Package service provides the application service that implements the
// dependencies required by the HTTP API: record access through the store
// adapter and the filter, aggregate and rank pipelines behind every view.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/dedupe"
	"github.com/okian/skillport/internal/domain/ranking"
	"github.com/okian/skillport/pkg/logger"
	"github.com/okian/skillport/pkg/metrics"
)

// Default owner of the single-user skill tracker.
const (
	DefaultOwnerID   = "owner"
	DefaultOwnerName = "SkillPort Owner"
)

// Service implements the API dependencies for SkillPort.
type Service struct {
	mu sync.RWMutex
	// awardMu serialises badge evaluation so concurrent skill writes award a badge once.
	awardMu sync.Mutex

	// Core components
	stores    repository.Stores
	resources repository.Stores
	deduper   dedupe.Deduper

	// Configuration
	dedupeSize      int
	ownerID         string
	ownerName       string
	defaultMetric   ranking.Metric
	certificateBase string
	now             func() time.Time

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStores sets the record stores. Without it the service starts on
// in-memory stores.
func WithStores(stores repository.Stores) Option {
	return func(s *Service) {
		s.stores = stores
	}
}

// WithDedupeSize sets how many idempotency keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOwner sets the portfolio owner whose skills, tasks and badges the
// personal views operate on.
func WithOwner(id, name string) Option {
	return func(s *Service) {
		if id != "" {
			s.ownerID = id
		}
		if name != "" {
			s.ownerName = name
		}
	}
}

// WithDefaultMetric sets the leaderboard metric used when a request names none.
func WithDefaultMetric(m ranking.Metric) Option {
	return func(s *Service) {
		if m != "" {
			s.defaultMetric = m
		}
	}
}

// WithCertificateBaseURL sets the URL prefix of issued certificate documents.
func WithCertificateBaseURL(base string) Option {
	return func(s *Service) {
		if base = strings.TrimRight(base, "/"); base != "" {
			s.certificateBase = base
		}
	}
}

// WithClock overrides the time source used for windows and badge dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:      dedupe.DefaultMaxSize,
		ownerID:         DefaultOwnerID,
		ownerName:       DefaultOwnerName,
		defaultMetric:   ranking.MetricScore,
		certificateBase: DefaultCertificateBaseURL,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting skillport service...")

	if s.stores.Members == nil {
		s.stores = repository.NewMemoryStores()
		s.logger.Info(ctx, "using in-memory stores")
	}
	s.resources = s.stores
	s.resources.Skills = &awardingSkills{Store: s.stores.Skills, svc: s}
	s.resources.Certificates = &resolvingCertificates{Store: s.stores.Certificates, svc: s}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	s.started = true
	s.logger.Info(ctx, "skillport service started",
		logger.String("owner", s.ownerID),
		logger.String("defaultMetric", string(s.defaultMetric)),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "skillport service stopped")
}

// Resources returns the stores the API reads and writes. Skill writes go
// through badge evaluation and certificate writes resolve member and class names.
func (s *Service) Resources() repository.Stores {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources
}

// SeenAndRecord reports whether an idempotency key was already used and
// records it otherwise. Keys are "<resource>:<client key>".
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	seen := s.deduper.SeenAndRecord(ctx, key)
	if seen {
		resource, _, _ := strings.Cut(key, ":")
		metrics.RecordIdempotentDuplicate(resource)
		s.logger.Debug(ctx, "duplicate idempotency key", logger.String("key", key))
	}
	return seen
}

// Forget releases a key so a failed create can be retried.
func (s *Service) Forget(ctx context.Context, key string) {
	s.deduper.Forget(ctx, key)
}

// Size returns the number of remembered idempotency keys.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Owner returns the configured owner id and display name.
func (s *Service) Owner() (id, name string) {
	return s.ownerID, s.ownerName
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"dedupeSize":    s.dedupeSize,
		"owner":         s.ownerID,
		"defaultMetric": string(s.defaultMetric),
	}
	if !s.started {
		return stats
	}

	stats["idempotencyKeys"] = s.deduper.Size()
	ctx := context.Background()
	counters := []struct {
		entity string
		count  func(context.Context) (int, error)
	}{
		{repository.EntityMembers, counter(s.stores.Members)},
		{repository.EntitySubmissions, counter(s.stores.Submissions)},
		{repository.EntitySkills, counter(s.stores.Skills)},
		{repository.EntityClasses, counter(s.stores.Classes)},
		{repository.EntityTasks, counter(s.stores.Tasks)},
		{repository.EntityCertificates, counter(s.stores.Certificates)},
		{repository.EntityBadges, counter(s.stores.Badges)},
		{repository.EntityProjects, counter(s.stores.Projects)},
		{repository.EntityPosts, counter(s.stores.Posts)},
		{repository.EntityCommunity, counter(s.stores.Community)},
	}
	records := make(map[string]int, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			s.logger.Warn(ctx, "count records failed", logger.String("entity", c.entity), logger.Error(err))
			continue
		}
		records[c.entity] = n
	}
	stats["records"] = records
	return stats
}

func counter[T any](store repository.Store[T]) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		all, err := store.List(ctx, "")
		return len(all), err
	}
}
