package service

import "errors"

// Client-facing errors. The HTTP layer maps them to status codes and uses
// their messages as response details.
var (
	ErrUnauthorized = errors.New("Authentication credentials were not provided.")
	ErrInvalidToken = newDetail("Invalid token.", ErrUnauthorized)
	ErrUserInactive = newDetail("User inactive or deleted.", ErrUnauthorized)

	ErrForbidden      = errors.New("You do not have permission to perform this action.")
	ErrForeignVacancy = newDetail("You can only access vacancies from your own projects.", ErrForbidden)

	ErrNotFound    = errors.New("Not found.")
	ErrInvalidPage = newDetail("Invalid page.", ErrNotFound)

	ErrNoActiveSession = errors.New("No active session found")

	// ErrUnavailable reports a storage failure that may succeed on retry.
	ErrUnavailable = errors.New("Service temporarily unavailable, try again later.")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrGeneratingToken       = errors.New("token generation failed")
	ErrHashingPassword       = errors.New("password hashing failed")
)

// detailError carries a more specific message than its parent while still
// matching it through [errors.Is].
type detailError struct {
	msg    string
	parent error
}

func newDetail(msg string, parent error) error {
	return &detailError{msg: msg, parent: parent}
}

func (e *detailError) Error() string { return e.msg }

func (e *detailError) Unwrap() error { return e.parent }
