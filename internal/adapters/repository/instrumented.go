package repository

import (
	"context"
	"errors"
	"time"

	"github.com/okian/skillport/pkg/metrics"
)

// instrumented records metrics for every call of the wrapped store.
type instrumented[T any] struct {
	entity string
	next   Store[T]
}

// Instrument wraps s so each operation is counted and timed under entity.
func Instrument[T any](entity string, s Store[T]) Store[T] {
	return &instrumented[T]{entity: entity, next: s}
}

func (i *instrumented[T]) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
		metrics.RecordErrorByComponent("store", op)
	}
	metrics.RecordStoreOperation(i.entity, op, result, float64(time.Since(start).Microseconds())/1000)
}

func (i *instrumented[T]) List(ctx context.Context, sort string) ([]T, error) {
	start := time.Now()
	out, err := i.next.List(ctx, sort)
	i.observe("list", start, err)
	if err == nil {
		metrics.UpdateStoreRecords(i.entity, len(out))
	}
	return out, err
}

func (i *instrumented[T]) Filter(ctx context.Context, criteria map[string]any) ([]T, error) {
	start := time.Now()
	out, err := i.next.Filter(ctx, criteria)
	i.observe("filter", start, err)
	return out, err
}

func (i *instrumented[T]) Get(ctx context.Context, id string) (T, error) {
	start := time.Now()
	out, err := i.next.Get(ctx, id)
	i.observe("get", start, err)
	return out, err
}

func (i *instrumented[T]) Create(ctx context.Context, rec T) (T, error) {
	start := time.Now()
	out, err := i.next.Create(ctx, rec)
	i.observe("create", start, err)
	return out, err
}

func (i *instrumented[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	start := time.Now()
	out, err := i.next.Update(ctx, id, rec)
	i.observe("update", start, err)
	return out, err
}

func (i *instrumented[T]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := i.next.Delete(ctx, id)
	i.observe("delete", start, err)
	return err
}
