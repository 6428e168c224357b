package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row of the users table: identity plus public profile fields.
type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	Username        *string   `json:"username,omitempty" gorm:"uniqueIndex"` // Nullable until every profile has picked a handle
	FullName        string    `json:"full_name" gorm:"not null"`
	Title           *string   `json:"title,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Location        *string   `json:"location,omitempty"`
	YearsExperience *int      `json:"years_experience,omitempty"`
	LinkedinURL     *string   `json:"linkedin_url,omitempty"`
	PortfolioURL    *string   `json:"portfolio_url,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// Initial returns the first letter of the display name, used when no avatar is set.
func (u User) Initial() string {
	for _, r := range u.FullName {
		return string(r)
	}
	return "?"
}

// Owner is the public subset of a user embedded into featured project listings.
type Owner struct {
	ID        uuid.UUID `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	FullName  string    `json:"full_name"`
	Title     *string   `json:"title,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// TableName maps Owner onto the users table.
func (Owner) TableName() string {
	return "users"
}
