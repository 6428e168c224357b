package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProjectStatus is the publication state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// OrDefault returns s, or draft when s is empty.
func (s ProjectStatus) OrDefault() ProjectStatus {
	if s == "" {
		return ProjectStatusDraft
	}
	return s
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusDraft || s == ProjectStatusPublished
}

// Project represents the structure of a project in the database.
type Project struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID      `json:"user_id" gorm:"type:uuid;index;not null"`
	Title            string         `json:"title" gorm:"not null"`
	Description      *string        `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	ProblemStatement *string        `json:"problem_statement,omitempty"`
	Solution         *string        `json:"solution,omitempty"`
	Results          *string        `json:"results,omitempty"`
	TechnologiesUsed pq.StringArray `json:"technologies_used" gorm:"type:text[]"`
	Company          *string        `json:"company,omitempty"`
	DurationMonths   *int           `json:"duration_months,omitempty"` // Nullable INTEGER
	ProjectURL       *string        `json:"project_url,omitempty"`
	ImageURLs        pq.StringArray `json:"image_urls" gorm:"column:image_urls;type:text[]"`
	Status           ProjectStatus  `json:"status" gorm:"not null;default:draft"`
	Featured         bool           `json:"featured" gorm:"not null;default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Owner is only populated by listings that embed the owning user.
	Owner *Owner `json:"users,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the database table name for the Project model.
func (Project) TableName() string {
	return "projects"
}

// CoverImage returns the first image reference, or "" when the project has none.
func (p Project) CoverImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// ProjectRef is the id/title pair embedded into recommendations that link a project.
type ProjectRef struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title string    `json:"title"`
}

// TableName maps ProjectRef onto the projects table.
func (ProjectRef) TableName() string {
	return "projects"
}
