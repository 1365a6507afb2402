// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-project-board/models"

// access is the kind of operation a caller attempts on a resource.
type access int

const (
	accessRead access = iota
	accessWrite
)

// authorizeProject decides whether callerID may perform op on project.
// Foreign projects are invisible to reads (ErrNotFound) and forbidden to
// writes (ErrForbidden).
func authorizeProject(callerID int64, project models.Project, op access) error {
	if project.OwnerID == callerID {
		return nil
	}
	if op == accessRead {
		return ErrNotFound
	}
	return ErrForbidden
}

// authorizeVacancy applies the project rule through the vacancy's project
// owner.
func authorizeVacancy(callerID int64, vacancy models.Vacancy, op access) error {
	if vacancy.ProjectOwnerID == callerID {
		return nil
	}
	if op == accessRead {
		return ErrNotFound
	}
	return ErrForeignVacancy
}
