// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the seeding client of the project board.
//
// It drives the public REST API through [adapter.APIClient] to create demo
// users, their projects and the vacancies of those projects. Records that
// already exist are left untouched, so a seed run can be repeated.
package client
