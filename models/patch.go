package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Patch types carry partial updates. Pointers distinguish an omitted field
// from a field set to its zero value. Fields returns the column map sent to the
// store; it never contains updated_at, which the store stamps itself.

// UserPatch is a partial update of a user profile.
type UserPatch struct {
	Username        *string `json:"username,omitempty"`
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,min=1"`
	Title           *string `json:"title,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`
	YearsExperience *int    `json:"years_experience,omitempty" validate:"omitempty,min=0"`
	LinkedinURL     *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	PortfolioURL    *string `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	AvatarURL       *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// Fields returns the columns set by the patch.
func (p UserPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setString(fields, "username", p.Username)
	setString(fields, "full_name", p.FullName)
	setString(fields, "title", p.Title)
	setString(fields, "bio", p.Bio)
	setString(fields, "location", p.Location)
	if p.YearsExperience != nil {
		fields["years_experience"] = *p.YearsExperience
	}
	setString(fields, "linkedin_url", p.LinkedinURL)
	setString(fields, "portfolio_url", p.PortfolioURL)
	setString(fields, "avatar_url", p.AvatarURL)
	return fields
}

// ProjectPatch is a partial update of a project.
type ProjectPatch struct {
	Title            *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Description      *string        `json:"description,omitempty"`
	ProblemStatement *string        `json:"problem_statement,omitempty"`
	Solution         *string        `json:"solution,omitempty"`
	Results          *string        `json:"results,omitempty"`
	TechnologiesUsed *[]string      `json:"technologies_used,omitempty"`
	Company          *string        `json:"company,omitempty"`
	DurationMonths   *int           `json:"duration_months,omitempty" validate:"omitempty,min=0"`
	ProjectURL       *string        `json:"project_url,omitempty" validate:"omitempty,url"`
	ImageURLs        *[]string      `json:"image_urls,omitempty"`
	Status           *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Featured         *bool          `json:"featured,omitempty"`
}

// Fields returns the columns set by the patch.
func (p ProjectPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setString(fields, "title", p.Title)
	setString(fields, "description", p.Description)
	setString(fields, "problem_statement", p.ProblemStatement)
	setString(fields, "solution", p.Solution)
	setString(fields, "results", p.Results)
	setStrings(fields, "technologies_used", p.TechnologiesUsed)
	setString(fields, "company", p.Company)
	if p.DurationMonths != nil {
		fields["duration_months"] = *p.DurationMonths
	}
	setString(fields, "project_url", p.ProjectURL)
	setStrings(fields, "image_urls", p.ImageURLs)
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields
}

// RecommendationPatch is a partial update of a recommendation, including moderation.
type RecommendationPatch struct {
	ProjectID           *uuid.UUID            `json:"project_id,omitempty"`
	RecommenderName     *string               `json:"recommender_name,omitempty" validate:"omitempty,min=1"`
	RecommenderTitle    *string               `json:"recommender_title,omitempty"`
	RecommenderCompany  *string               `json:"recommender_company,omitempty"`
	RecommenderLinkedin *string               `json:"recommender_linkedin,omitempty" validate:"omitempty,url"`
	RecommendationText  *string               `json:"recommendation_text,omitempty" validate:"omitempty,min=1"`
	SkillsHighlighted   *[]string             `json:"skills_highlighted,omitempty"`
	Status              *RecommendationStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}

// Fields returns the columns set by the patch.
func (p RecommendationPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.ProjectID != nil {
		fields["project_id"] = p.ProjectID.String()
	}
	setString(fields, "recommender_name", p.RecommenderName)
	setString(fields, "recommender_title", p.RecommenderTitle)
	setString(fields, "recommender_company", p.RecommenderCompany)
	setString(fields, "recommender_linkedin", p.RecommenderLinkedin)
	setString(fields, "recommendation_text", p.RecommendationText)
	setStrings(fields, "skills_highlighted", p.SkillsHighlighted)
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	return fields
}

func setString(fields map[string]interface{}, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

func setStrings(fields map[string]interface{}, column string, v *[]string) {
	if v != nil {
		fields[column] = pq.StringArray(*v)
	}
}
