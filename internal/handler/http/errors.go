// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-project-board/internal/service"
)

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Both match [service.ErrUnauthorized].
var (
	// ErrInvalidAuthorizationHeader is returned when the header carries a
	// known scheme but no credentials.
	ErrInvalidAuthorizationHeader error = &headerError{msg: "Invalid token header. No credentials provided."}

	// ErrTokenContainsSpaces is returned when the credentials part of the
	// header is split by spaces.
	ErrTokenContainsSpaces error = &headerError{msg: "Invalid token header. Token string should not contain spaces."}
)

var (
	// ErrMalformedJSON is the parent of request body decoding failures.
	ErrMalformedJSON = errors.New("JSON parse error")

	errInternal = errors.New("A server error occurred.")
)

type headerError struct {
	msg string
}

func (e *headerError) Error() string { return e.msg }

func (e *headerError) Unwrap() error { return service.ErrUnauthorized }

// jsonParseError wraps a decoding failure of a request body.
type jsonParseError struct {
	err error
}

func (e *jsonParseError) Error() string { return ErrMalformedJSON.Error() + " - " + e.err.Error() }

func (e *jsonParseError) Unwrap() []error { return []error{ErrMalformedJSON, e.err} }
