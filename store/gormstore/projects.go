package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

func (s *Store) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.run(ctx, "get project by id", store.TableProjects, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) GetUserProjects(ctx context.Context, userID uuid.UUID, filter store.ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.run(ctx, "get user projects", store.TableProjects, func(db *gorm.DB) error {
		q := db.Where("user_id = ?", userID)
		if status, ok := filter.StatusFilter(); ok {
			q = q.Where("status = ?", string(status))
		}
		return q.Order("created_at DESC").Find(&projects).Error
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetFeaturedProjects lists published, featured projects with their owners, newest first.
func (s *Store) GetFeaturedProjects(ctx context.Context, limit int) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.run(ctx, "get featured projects", store.TableProjects, func(db *gorm.DB) error {
		return db.
			Preload("Owner", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "full_name", "title", "avatar_url")
			}).
			Where("status = ? AND featured = ?", string(models.ProjectStatusPublished), true).
			Order("created_at DESC").
			Limit(store.FeaturedLimit(limit)).
			Find(&projects).Error
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject inserts project. The id is generated here when the caller left it unset.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	row := *project
	row.Owner = nil
	row.Status = row.Status.OrDefault()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := s.run(ctx, "create project", store.TableProjects, func(db *gorm.DB) error {
		return db.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	var project models.Project
	if err := s.patch(ctx, "update project", store.TableProjects, id, patch.Fields(), &project); err != nil {
		return nil, err
	}
	return &project, nil
}
