package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/internal/validators"
)

// translate converts a storage error into a service error. Unique violations
// become field errors matching validators.ErrConflict; anything unknown is
// returned unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return validators.FieldError(validators.FieldUsername, validators.ErrDuplicateUsername)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return validators.FieldError(validators.FieldEmail, validators.ErrDuplicateEmail)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrTemporarilyUnavailable):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// field pairs a payload field name with its presence in a partial update.
type field struct {
	name    string
	present bool
}

// presentFields returns the names of the fields present in the payload.
func presentFields(fields ...field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.present {
			names = append(names, f.name)
		}
	}
	return names
}
