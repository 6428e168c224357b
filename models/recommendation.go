package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RecommendationStatus is the moderation state of a recommendation.
type RecommendationStatus string

const (
	RecommendationStatusPending  RecommendationStatus = "pending"
	RecommendationStatusApproved RecommendationStatus = "approved"
	RecommendationStatusRejected RecommendationStatus = "rejected"
)

// OrDefault returns s, or pending when s is empty.
func (s RecommendationStatus) OrDefault() RecommendationStatus {
	if s == "" {
		return RecommendationStatusPending
	}
	return s
}

// Valid reports whether s is a known moderation status.
func (s RecommendationStatus) Valid() bool {
	switch s {
	case RecommendationStatusPending, RecommendationStatusApproved, RecommendationStatusRejected:
		return true
	}
	return false
}

// Recommendation represents a testimonial left for a user, optionally about one of their projects.
type Recommendation struct {
	ID                  uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID            `json:"user_id" gorm:"type:uuid;index;not null"`
	ProjectID           *uuid.UUID           `json:"project_id,omitempty" gorm:"type:uuid"` // Nullable foreign key
	RecommenderName     string               `json:"recommender_name" gorm:"not null"`
	RecommenderTitle    *string              `json:"recommender_title,omitempty"`
	RecommenderCompany  *string              `json:"recommender_company,omitempty"`
	RecommenderLinkedin *string              `json:"recommender_linkedin,omitempty"`
	RecommendationText  string               `json:"recommendation_text" gorm:"not null"`
	SkillsHighlighted   pq.StringArray       `json:"skills_highlighted" gorm:"type:text[]"`
	Status              RecommendationStatus `json:"status" gorm:"not null;default:pending"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`

	LinkedProject *ProjectRef `json:"projects,omitempty" gorm:"foreignKey:ProjectID"`
}

// TableName returns the database table name for the Recommendation model.
func (Recommendation) TableName() string {
	return "recommendations"
}
