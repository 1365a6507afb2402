package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnavailable         = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")

	ErrEmptyBaseURL = errors.New("empty base URL")
)
