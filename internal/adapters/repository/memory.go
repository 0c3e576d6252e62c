package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/okian/skillport/internal/domain/model"
)

// stored keeps a record both as its JSON encoding, which is decoded afresh
// on every read so callers never share memory with the store, and as a
// generic document used for sorting and filtering by JSON field name.
type stored struct {
	raw []byte
	doc map[string]any
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore[T any, P model.Entity[T]] struct {
	mu      sync.RWMutex
	records map[string]stored
	order   []string
	fields  map[string]struct{}
	cfg     settings
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[T any, P model.Entity[T]](opts ...Option) *MemoryStore[T, P] {
	return &MemoryStore[T, P]{
		records: make(map[string]stored),
		fields:  jsonFields(reflect.TypeFor[T]()),
		cfg:     defaults(opts),
	}
}

func encode[T any](rec T) (stored, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return stored{}, fmt.Errorf("encode record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return stored{}, fmt.Errorf("index record: %w", err)
	}
	return stored{raw: raw, doc: doc}, nil
}

func decode[T any](s stored) (T, error) {
	var rec T
	if err := json.Unmarshal(s.raw, &rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

// List implements Store.
func (m *MemoryStore[T, P]) List(ctx context.Context, sort string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := ParseSort(sort)
	if err := checkSort(m.fields, s); err != nil {
		return nil, err
	}

	m.mu.RLock()
	rows := make([]stored, 0, len(m.order))
	for _, id := range m.order {
		rows = append(rows, m.records[id])
	}
	m.mu.RUnlock()

	if s.Field != "" {
		slices.SortStableFunc(rows, func(a, b stored) int {
			return compareDocs(a.doc[s.Field], b.doc[s.Field], s.Desc)
		})
	}
	return decodeAll[T](rows)
}

// Filter implements Store.
func (m *MemoryStore[T, P]) Filter(ctx context.Context, criteria map[string]any) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkCriteria(m.fields, criteria); err != nil {
		return nil, err
	}
	want, err := normalize(criteria)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	rows := make([]stored, 0)
	for _, id := range m.order {
		r := m.records[id]
		if matchesDoc(r.doc, want) {
			rows = append(rows, r)
		}
	}
	m.mu.RUnlock()

	return decodeAll[T](rows)
}

// Get implements Store.
func (m *MemoryStore[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	r, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decode[T](r)
}

// Create implements Store.
func (m *MemoryStore[T, P]) Create(ctx context.Context, rec T) (T, error) {
	if err := ctx.Err(); err != nil {
		return rec, err
	}
	p := P(&rec)
	if d, ok := any(p).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	now := m.cfg.now()
	meta := p.Meta()
	meta.ID = m.cfg.newID()
	meta.CreatedAt, meta.UpdatedAt = now, now

	s, err := encode(rec)
	if err != nil {
		return rec, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[meta.ID] = s
	m.order = append(m.order, meta.ID)
	return decode[T](s)
}

// Update implements Store.
func (m *MemoryStore[T, P]) Update(ctx context.Context, id string, rec T) (T, error) {
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.records[id]
	if !ok {
		return rec, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev, err := decode[T](old)
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
	meta.UpdatedAt = m.cfg.now()

	s, err := encode(rec)
	if err != nil {
		return rec, err
	}
	m.records[id] = s
	return decode[T](s)
}

// Delete implements Store.
func (m *MemoryStore[T, P]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.records, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

// Len returns the number of stored records.
func (m *MemoryStore[T, P]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func decodeAll[T any](rows []stored) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		rec, err := decode[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// normalize passes criteria through JSON so they compare equal to the
// decoded documents (numbers as float64, times as strings).
func normalize(criteria map[string]any) (map[string]any, error) {
	if len(criteria) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return out, nil
}

func matchesDoc(doc, want map[string]any) bool {
	for k, v := range want {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

// compareDocs orders two JSON values; absent values trail in both directions.
func compareDocs(a, b any, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := compareValues(a, b)
	if desc {
		return -c
	}
	return c
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			ta, errA := time.Parse(time.RFC3339Nano, av)
			tb, errB := time.Parse(time.RFC3339Nano, bv)
			if errA == nil && errB == nil {
				return ta.Compare(tb)
			}
			return cmp.Compare(av, bv)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
