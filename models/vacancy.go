package models

import (
	"fmt"
	"time"
)

// EmploymentType is the kind of engagement offered by a vacancy.
type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Freelance  EmploymentType = "freelance"
	Internship EmploymentType = "internship"
)

// EmploymentTypes is the exhaustive, ordered set of accepted employment types.
var EmploymentTypes = []EmploymentType{FullTime, PartTime, Contract, Freelance, Internship}

// Valid reports whether e is one of [EmploymentTypes].
func (e EmploymentType) Valid() bool {
	for _, t := range EmploymentTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Vacancy is a job opening attached to exactly one project. Ownership is
// resolved through the project and never stored on the vacancy.
type Vacancy struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements"`
	SalaryMin      *Amount        `json:"salary_min"`
	SalaryMax      *Amount        `json:"salary_max"`
	SalaryRange    string         `json:"salary_range"`
	EmploymentType EmploymentType `json:"employment_type"`
	ProjectID      int64          `json:"project"`
	ProjectTitle   string         `json:"project_title"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// ProjectOwnerID is loaded with the vacancy for authorization.
	ProjectOwnerID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Vacancy model.
func (v Vacancy) TableName() string {
	return "vacancies"
}

// Derive fills the read-time fields.
func (v *Vacancy) Derive() {
	v.SalaryRange = SalaryRange(v.SalaryMin, v.SalaryMax)
}

// SalaryRange renders the human-readable salary band:
// "<min> - <max>", "from <min>", "up to <max>" or "Negotiable".
func SalaryRange(salaryMin, salaryMax *Amount) string {
	switch {
	case salaryMin != nil && salaryMax != nil:
		return fmt.Sprintf("%s - %s", salaryMin, salaryMax)
	case salaryMin != nil:
		return fmt.Sprintf("from %s", salaryMin)
	case salaryMax != nil:
		return fmt.Sprintf("up to %s", salaryMax)
	default:
		return "Negotiable"
	}
}

// VacancyRequest is the create/update payload for vacancies. Project is
// ignored when the vacancy is created through its project route.
type VacancyRequest struct {
	Title          Nullable[string]         `json:"title,omitzero"`
	Description    Nullable[string]         `json:"description,omitzero"`
	Requirements   Nullable[string]         `json:"requirements,omitzero"`
	SalaryMin      Nullable[Amount]         `json:"salary_min,omitzero"`
	SalaryMax      Nullable[Amount]         `json:"salary_max,omitzero"`
	EmploymentType Nullable[EmploymentType] `json:"employment_type,omitzero"`
	IsActive       Nullable[bool]           `json:"is_active,omitzero"`
	Project        Nullable[int64]          `json:"project,omitzero"`
}

// VacancyFilter narrows vacancy listings. OwnerID is mandatory and scopes the
// listing to the caller's projects; nil filters are not applied.
type VacancyFilter struct {
	OwnerID        int64
	ProjectID      *int64
	EmploymentType *EmploymentType
	IsActive       *bool
}
