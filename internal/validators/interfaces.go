// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules for accounts, projects and
// vacancies.
//
// Every validator collects all failures of a payload into an [*Errors]
// keyed by field name instead of stopping at the first problem. The
// aggregate matches [ErrValidation], and each contained rule error stays
// reachable through [errors.Is] (for example [ErrPasswordMismatch] or
// [ErrSalaryRangeInverted]). Uniqueness violations wrap [ErrConflict].
//
// Rules that need storage (username and email uniqueness, ownership of a
// referenced project) are applied by the service layer, which adds its
// findings to the same *Errors value.
package validators

import "context"

// Validator defines a generic validation interface for request payloads.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
