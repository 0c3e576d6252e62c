// Package filter narrows record snapshots with a conjunction of predicates.
//
// Predicates never mutate their input and never fail: a record whose field is
// absent simply does not match a criterion on that field.
package filter

import "strings"

// All is the sentinel value meaning "no restriction" for categorical criteria.
const All = "all"

// Predicate reports whether a record is kept.
type Predicate[T any] func(T) bool

// Apply returns a fresh slice holding the records matched by every predicate,
// in input order. Nil predicates are ignored.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func matches[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// Field extracts the searchable text values of a record.
type Field[T any] func(T) []string

// Text adapts a plain string accessor.
func Text[T any](get func(T) string) Field[T] {
	return func(r T) []string { return []string{get(r)} }
}

// TextPtr adapts an optional string accessor; nil means the field is absent.
func TextPtr[T any](get func(T) *string) Field[T] {
	return func(r T) []string {
		if v := get(r); v != nil {
			return []string{*v}
		}
		return nil
	}
}

// List adapts a multi-valued accessor such as tags.
func List[T any](get func(T) []string) Field[T] { return Field[T](get) }

// Search matches records where any field contains term, ignoring case.
// A blank term matches every record.
func Search[T any](term string, fields ...Field[T]) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(r T) bool {
		for _, f := range fields {
			for _, v := range f(r) {
				if v != "" && strings.Contains(strings.ToLower(v), term) {
					return true
				}
			}
		}
		return false
	}
}

// Unrestricted reports whether a categorical criterion value imposes no restriction.
func Unrestricted(want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, All)
}

// Equals matches records whose field equals want exactly.
func Equals[T any, V ~string](want string, field func(T) V) Predicate[T] {
	if Unrestricted(want) {
		return nil
	}
	want = strings.TrimSpace(want)
	return func(r T) bool { return string(field(r)) == want }
}

// EqualsPtr is Equals for optional fields; an absent field never matches.
func EqualsPtr[T any](want string, field func(T) *string) Predicate[T] {
	if Unrestricted(want) {
		return nil
	}
	want = strings.TrimSpace(want)
	return func(r T) bool {
		v := field(r)
		return v != nil && *v == want
	}
}

// Between matches records whose value lies in [lo, hi].
func Between[T any](lo, hi float64, value func(T) float64) Predicate[T] {
	return func(r T) bool {
		v := value(r)
		return v >= lo && v <= hi
	}
}

// AnyOf matches records holding at least one nested item accepted by pred.
// A nil pred is no restriction.
func AnyOf[T, E any](items func(T) []E, pred Predicate[E]) Predicate[T] {
	if pred == nil {
		return nil
	}
	return func(r T) bool {
		for _, it := range items(r) {
			if pred(it) {
				return true
			}
		}
		return false
	}
}

// Or matches records accepted by any non-nil predicate. With no non-nil
// predicate it imposes no restriction.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	live := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(r T) bool {
		for _, p := range live {
			if p(r) {
				return true
			}
		}
		return false
	}
}
