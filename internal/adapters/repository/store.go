// Package repository defines the record store interface and its memory and
// gorm backends.
package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Store provides create/read/update/delete access to one entity type.
type Store[T any] interface {
	// List returns all records. sort names a JSON field, prefixed with "-" for
	// descending order; empty keeps insertion order. Absent values sort last.
	List(ctx context.Context, sort string) ([]T, error)

	// Filter returns the records whose JSON fields equal every criteria value.
	Filter(ctx context.Context, criteria map[string]any) ([]T, error)

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Create assigns a fresh id and timestamps and stores rec.
	Create(ctx context.Context, rec T) (T, error)

	// Update replaces the record with id, keeping its creation time.
	Update(ctx context.Context, id string, rec T) (T, error)

	// Delete removes the record with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Sort is a parsed sort expression.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort splits a "-field" expression. The empty string yields the zero Sort.
func ParseSort(expr string) Sort {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "-") {
		return Sort{Field: strings.TrimPrefix(expr, "-"), Desc: true}
	}
	return Sort{Field: expr}
}

// jsonFields returns the JSON names of the exported fields of t, walking
// embedded structs the way encoding/json flattens them.
func jsonFields(t reflect.Type) map[string]struct{} {
	out := make(map[string]struct{})
	var walk func(reflect.Type)
	walk = func(t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
				walk(f.Type)
				continue
			}
			if name == "" {
				name = f.Name
			}
			out[name] = struct{}{}
		}
	}
	walk(t)
	return out
}

func checkSort(fields map[string]struct{}, s Sort) error {
	if s.Field == "" {
		return nil
	}
	if _, ok := fields[s.Field]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSort, s.Field)
	}
	return nil
}

func checkCriteria(fields map[string]struct{}, criteria map[string]any) error {
	for k := range criteria {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidCriteria, k)
		}
	}
	return nil
}
