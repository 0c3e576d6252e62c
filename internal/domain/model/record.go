// Package model contains the plain data records read and written through the
// record store and consumed by the filter, aggregation and ranking engines.
package model

import "time"

// Record carries the store-managed identity and timestamps embedded by every entity.
type Record struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`
}

// Meta exposes the embedded record to generic stores.
func (r *Record) Meta() *Record { return r }

// Entity is satisfied by pointers to structs that embed Record.
type Entity[T any] interface {
	*T
	Meta() *Record
}

// Defaulter is implemented by entities that fill schema defaults before validation.
type Defaulter interface {
	ApplyDefaults()
}

// Str returns a pointer to s, or nil when s is empty.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Num returns a pointer to f.
func Num(f float64) *float64 { return &f }

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
