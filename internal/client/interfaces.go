// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the client against the API and blocks until done.
	Run(ctx context.Context) (Summary, error)
}

// Summary reports what a seed run created.
type Summary struct {
	Users     int
	Projects  int
	Vacancies int
}
