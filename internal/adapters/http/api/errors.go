package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/ranking"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrDuplicate  = errors.New("duplicate request")
	ErrValidation = errors.New("validation failed")
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.kind != nil && e.err != nil:
		return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
	case e.kind != nil:
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

func (e *opError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.err != nil {
		out = append(out, e.err)
	}
	return out
}

// Wrap tags err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// WrapKind tags err with op and classifies it as kind.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// NewKind returns an error of kind raised by op itself.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// statusFor maps an error to its HTTP status and response code.
func statusFor(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, repository.ErrUnresolvedRef):
		// Checked before ErrNotFound, which it wraps.
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &verrs), errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalidSort),
		errors.Is(err, repository.ErrInvalidCriteria),
		errors.Is(err, filter.ErrUnknownWindow),
		errors.Is(err, filter.ErrUnknownLevel),
		errors.Is(err, filter.ErrUnknownSort),
		errors.Is(err, filter.ErrUnknownSelector),
		errors.Is(err, ranking.ErrUnknownMetric),
		errors.Is(err, ranking.ErrUnknownDirection):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "internal_error"
}
