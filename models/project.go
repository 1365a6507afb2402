package models

import (
	"encoding/json"
	"time"
)

// Project is a software development project owned by a single user.
//
// TechnologiesCount, IsOverdue, VacanciesCount and Owner are derived on read
// and never stored.
type Project struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Technologies []string        `json:"technologies"`
	Budget       *Amount         `json:"budget"`
	Deadline     *Date           `json:"deadline"`
	Owner        string          `json:"owner"`
	OwnerID      int64           `json:"owner_id"`
	Metadata     json.RawMessage `json:"metadata"`

	TechnologiesCount int   `json:"technologies_count"`
	IsOverdue         bool  `json:"is_overdue"`
	VacanciesCount    int64 `json:"vacancies_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}

// Derive fills the read-time fields that depend on the current date.
func (p *Project) Derive(today Date) {
	p.TechnologiesCount = len(p.Technologies)
	p.IsOverdue = p.Deadline != nil && today.After(p.Deadline.Time)
}

// ListItem converts the project into its lightweight list representation.
func (p Project) ListItem() ProjectListItem {
	return ProjectListItem{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		TechnologiesCount: p.TechnologiesCount,
		Budget:            p.Budget,
		Deadline:          p.Deadline,
		Owner:             p.Owner,
		VacanciesCount:    p.VacanciesCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ProjectListItem is the lightweight project record returned by list endpoints.
type ProjectListItem struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	TechnologiesCount int       `json:"technologies_count"`
	Budget            *Amount   `json:"budget"`
	Deadline          *Date     `json:"deadline"`
	Owner             string    `json:"owner"`
	VacanciesCount    int64     `json:"vacancies_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProjectRequest is the create/update payload for projects. On partial
// updates absent fields keep their stored values.
//
// Technologies and Metadata are kept raw so that type errors can be reported
// as field errors instead of decoding failures.
type ProjectRequest struct {
	Title        Nullable[string]          `json:"title,omitzero"`
	Description  Nullable[string]          `json:"description,omitzero"`
	Technologies Nullable[json.RawMessage] `json:"technologies,omitzero"`
	Budget       Nullable[Amount]          `json:"budget,omitzero"`
	Deadline     Nullable[Date]            `json:"deadline,omitzero"`
	Metadata     Nullable[json.RawMessage] `json:"metadata,omitzero"`
}

// ProjectStats summarizes a project and its vacancies.
type ProjectStats struct {
	TotalTechnologies int   `json:"total_technologies"`
	TotalVacancies    int64 `json:"total_vacancies"`
	ActiveVacancies   int64 `json:"active_vacancies"`
	IsOverdue         bool  `json:"is_overdue"`
	DaysUntilDeadline *int  `json:"days_until_deadline"`
}

// VacancyCounts holds the vacancy totals of one project.
type VacancyCounts struct {
	Total  int64
	Active int64
}
