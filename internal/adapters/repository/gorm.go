package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/okian/skillport/internal/domain/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Supported SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to a SQL database through gorm.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if strings.EqualFold(driver, DriverSQLite) && !strings.Contains(dsn, ":memory:") {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func configureSQLite(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("exec %s: %w", pragma, err)
		}
	}
	return nil
}

// Migrate creates or updates the tables of every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Member{},
		&model.Submission{},
		&model.Skill{},
		&model.ClassContest{},
		&model.Task{},
		&model.Certificate{},
		&model.Badge{},
		&model.Project{},
		&model.Post{},
		&model.CommunityTask{},
	)
}

// GormStore is a Store backed by a gorm table.
type GormStore[T any, P model.Entity[T]] struct {
	db      *gorm.DB
	columns map[string]string
	cfg     settings
}

// NewGormStore maps the JSON field names of T to its table columns.
func NewGormStore[T any, P model.Entity[T]](db *gorm.DB, opts ...Option) (*GormStore[T, P], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	columns := make(map[string]string, len(stmt.Schema.Fields))
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		columns[name] = f.DBName
	}
	return &GormStore[T, P]{db: db, columns: columns, cfg: defaults(opts)}, nil
}

func (g *GormStore[T, P]) byInsertion(q *gorm.DB) *gorm.DB {
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

// List implements Store.
func (g *GormStore[T, P]) List(ctx context.Context, sort string) ([]T, error) {
	s := ParseSort(sort)
	q := g.db.WithContext(ctx).Model(new(T))
	if s.Field != "" {
		col, ok := g.columns[s.Field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, s.Field)
		}
		// NULLs trail in both directions, matching the memory store.
		q = q.Order(q.Statement.Quote(col) + " IS NULL").
			Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Desc})
	}
	out := make([]T, 0)
	if err := g.byInsertion(q).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}

// Filter implements Store.
func (g *GormStore[T, P]) Filter(ctx context.Context, criteria map[string]any) ([]T, error) {
	where := make(map[string]any, len(criteria))
	for k, v := range criteria {
		col, ok := g.columns[k]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCriteria, k)
		}
		where[col] = v
	}
	q := g.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		q = q.Where(where)
	}
	out := make([]T, 0)
	if err := g.byInsertion(q).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return out, nil
}

// Get implements Store.
func (g *GormStore[T, P]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

// Create implements Store.
func (g *GormStore[T, P]) Create(ctx context.Context, rec T) (T, error) {
	p := P(&rec)
	if d, ok := any(p).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	now := g.cfg.now()
	meta := p.Meta()
	meta.ID = g.cfg.newID()
	meta.CreatedAt, meta.UpdatedAt = now, now
	if err := g.db.WithContext(ctx).Create(p).Error; err != nil {
		return rec, fmt.Errorf("create: %w", err)
	}
	return rec, nil
}

// Update implements Store.
func (g *GormStore[T, P]) Update(ctx context.Context, id string, rec T) (T, error) {
	prev, err := g.Get(ctx, id)
	if err != nil {
		return rec, err
	}
	p := P(&rec)
	if d, ok := any(p).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	meta := p.Meta()
	meta.ID = id
	meta.CreatedAt = P(&prev).Meta().CreatedAt
	meta.UpdatedAt = g.cfg.now()
	if err := g.db.WithContext(ctx).Save(p).Error; err != nil {
		return rec, fmt.Errorf("update %s: %w", id, err)
	}
	return rec, nil
}

// Delete implements Store.
func (g *GormStore[T, P]) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
