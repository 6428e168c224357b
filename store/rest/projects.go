package rest

import (
	"context"

	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

// featuredColumns embeds the owning user's public fields into each project.
const featuredColumns = "*, users(id, full_name, title, avatar_url)"

// GetProjectByID fetches a single project regardless of status.
func (s *Store) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "get project by id"
	var projects []models.Project
	q := s.db.From(store.TableProjects).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "")
	if err := s.run(ctx, op, store.TableProjects, q, &projects); err != nil {
		return nil, err
	}
	return one(op, store.TableProjects, projects)
}

// GetUserProjects lists a user's projects, newest first.
func (s *Store) GetUserProjects(ctx context.Context, userID uuid.UUID, filter store.ProjectFilter) ([]models.Project, error) {
	const op = "get user projects"
	q := s.db.From(store.TableProjects).
		Select("*", "", false).
		Eq("user_id", userID.String())
	if status, ok := filter.StatusFilter(); ok {
		q = q.Eq("status", string(status))
	}
	q = q.Order("created_at", newestFirst)

	projects := []models.Project{}
	if err := s.run(ctx, op, store.TableProjects, q, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetFeaturedProjects lists published, featured projects with their owners, newest first.
func (s *Store) GetFeaturedProjects(ctx context.Context, limit int) ([]models.Project, error) {
	const op = "get featured projects"
	q := s.db.From(store.TableProjects).
		Select(featuredColumns, "", false).
		Eq("status", string(models.ProjectStatusPublished)).
		Eq("featured", "true").
		Order("created_at", newestFirst).
		Limit(store.FeaturedLimit(limit), "")

	projects := []models.Project{}
	if err := s.run(ctx, op, store.TableProjects, q, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts project and returns the persisted row.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	const op = "create project"
	row := *project
	row.Status = row.Status.OrDefault()
	var projects []models.Project
	if err := s.insert(ctx, op, store.TableProjects, row, &projects); err != nil {
		return nil, err
	}
	return one(op, store.TableProjects, projects)
}

// UpdateProject applies patch to the project with the given id and returns the updated row.
func (s *Store) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	const op = "update project"
	var projects []models.Project
	if err := s.update(ctx, op, store.TableProjects, id, patch.Fields(), &projects); err != nil {
		return nil, err
	}
	return one(op, store.TableProjects, projects)
}
