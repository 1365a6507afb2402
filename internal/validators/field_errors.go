package validators

import (
	"errors"
	"sort"
	"strings"
)

// NonFieldErrors is the key under which errors that span several fields are
// reported.
const NonFieldErrors = "non_field_errors"

// Errors collects validation failures per field so that a caller sees every
// problem in one response.
//
// Any *Errors matches [ErrValidation] with [errors.Is]; the contained
// per-field errors are reachable too, so errors.Is(err, ErrPasswordMismatch)
// works on the aggregate.
type Errors struct {
	fields map[string][]error
	order  []string
}

// NewErrors returns an empty collector.
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]error)}
}

// Add records err under field. A nil err is ignored.
func (e *Errors) Add(field string, err error) {
	if err == nil {
		return
	}
	if e.fields == nil {
		e.fields = make(map[string][]error)
	}
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], err)
}

// Merge copies the field errors of err into e. Errors that are not *Errors
// are recorded as non-field errors.
func (e *Errors) Merge(err error) {
	if err == nil {
		return
	}
	var other *Errors
	if errors.As(err, &other) {
		for _, field := range other.order {
			for _, fe := range other.fields[field] {
				e.Add(field, fe)
			}
		}
		return
	}
	e.Add(NonFieldErrors, err)
}

// Has reports whether field has at least one error.
func (e *Errors) Has(field string) bool {
	return len(e.fields[field]) > 0
}

// Len returns the number of fields with errors.
func (e *Errors) Len() int {
	return len(e.order)
}

// Err returns e when it holds at least one error and nil otherwise.
func (e *Errors) Err() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

// Fields returns the messages per field, ready to be serialized.
func (e *Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for field, errs := range e.fields {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		out[field] = msgs
	}
	return out
}

// Error implements the error interface.
func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for _, k := range keys {
		for _, err := range e.fields[k] {
			b.WriteString("; ")
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(err.Error())
		}
	}
	return b.String()
}

// Is makes every *Errors match [ErrValidation].
func (e *Errors) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap exposes the contained field errors to [errors.Is] and [errors.As].
func (e *Errors) Unwrap() []error {
	var all []error
	for _, field := range e.order {
		all = append(all, e.fields[field]...)
	}
	return all
}

// FieldError builds a single-field validation error.
func FieldError(field string, err error) error {
	errs := NewErrors()
	errs.Add(field, err)
	return errs
}
