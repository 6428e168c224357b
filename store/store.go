// Package store defines the data access contract between the HTTP/profile
// layers and the remote tables (users, projects, recommendations).
//
// Every operation performs exactly one query and returns (value, error).
// Single-row lookups that match nothing fail with ErrNoRows; any other error is
// the backend's error wrapped in an *OpError, unchanged underneath.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pmfolio/web/models"
)

const (
	TableUsers           = "users"
	TableProjects        = "projects"
	TableRecommendations = "recommendations"
)

const (
	// DefaultFeaturedLimit bounds GetFeaturedProjects when the caller passes no limit.
	DefaultFeaturedLimit = 6
	// DefaultEmailDomain is the placeholder domain used to derive an email from a username.
	DefaultEmailDomain = "example.com"
)

var (
	// ErrNoRows is returned when a single-row lookup or keyed update matched zero rows.
	ErrNoRows = errors.New("no rows in result set")
	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("patch has no fields to update")
)

// OpError annotates a backend failure with the operation and table it came from.
type OpError struct {
	Op    string
	Table string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is the no-rows outcome of a single-row operation.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoRows)
}

// ProjectFilter selects projects by status. The zero value selects published projects.
type ProjectFilter struct {
	Status    models.ProjectStatus
	AnyStatus bool
}

// StatusFilter returns the status to filter on, and false when no status filter applies.
func (f ProjectFilter) StatusFilter() (models.ProjectStatus, bool) {
	if f.AnyStatus {
		return "", false
	}
	if f.Status == "" {
		return models.ProjectStatusPublished, true
	}
	return f.Status, true
}

// RecommendationFilter selects recommendations by status. The zero value selects
// approved recommendations without the linked project.
type RecommendationFilter struct {
	Status            models.RecommendationStatus
	AnyStatus         bool
	WithLinkedProject bool
}

// StatusFilter returns the status to filter on, and false when no status filter applies.
func (f RecommendationFilter) StatusFilter() (models.RecommendationStatus, bool) {
	if f.AnyStatus {
		return "", false
	}
	if f.Status == "" {
		return models.RecommendationStatusApproved, true
	}
	return f.Status, true
}

// UserStore covers reads and writes of the users table.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByUsername looks the user up by the email derived from username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByHandle looks the user up by the explicit username column.
	GetUserByHandle(ctx context.Context, handle string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error)
}

// ProjectStore covers reads and writes of the projects table.
type ProjectStore interface {
	GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetUserProjects(ctx context.Context, userID uuid.UUID, filter ProjectFilter) ([]models.Project, error)
	GetFeaturedProjects(ctx context.Context, limit int) ([]models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
}

// RecommendationStore covers reads and writes of the recommendations table.
type RecommendationStore interface {
	GetRecommendationByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	GetUserRecommendations(ctx context.Context, userID uuid.UUID, filter RecommendationFilter) ([]models.Recommendation, error)
	CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error)
	UpdateRecommendation(ctx context.Context, id uuid.UUID, patch models.RecommendationPatch) (*models.Recommendation, error)
}

// Store is the full data access layer.
type Store interface {
	UserStore
	ProjectStore
	RecommendationStore
}

// EmailForUsername derives the placeholder email for username. An empty domain
// falls back to DefaultEmailDomain.
func EmailForUsername(username, domain string) string {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return fmt.Sprintf("%s@%s", strings.TrimSpace(username), domain)
}

// FeaturedLimit normalizes a caller-supplied featured limit.
func FeaturedLimit(limit int) int {
	if limit <= 0 {
		return DefaultFeaturedLimit
	}
	return limit
}
