package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

func (s *Store) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := s.run(ctx, "get recommendation by id", store.TableRecommendations, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) GetUserRecommendations(ctx context.Context, userID uuid.UUID, filter store.RecommendationFilter) ([]models.Recommendation, error) {
	recs := []models.Recommendation{}
	err := s.run(ctx, "get user recommendations", store.TableRecommendations, func(db *gorm.DB) error {
		q := db.Where("user_id = ?", userID)
		if status, ok := filter.StatusFilter(); ok {
			q = q.Where("status = ?", string(status))
		}
		if filter.WithLinkedProject {
			q = q.Preload("LinkedProject", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "title")
			})
		}
		return q.Order("created_at DESC").Find(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRecommendation inserts rec. The id is generated here when the caller left it unset.
func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	row := *rec
	row.LinkedProject = nil
	row.Status = row.Status.OrDefault()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := s.run(ctx, "create recommendation", store.TableRecommendations, func(db *gorm.DB) error {
		return db.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) UpdateRecommendation(ctx context.Context, id uuid.UUID, patch models.RecommendationPatch) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := s.patch(ctx, "update recommendation", store.TableRecommendations, id, patch.Fields(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
