package rest

import (
	"context"

	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

const linkedProjectColumns = "*, projects(id, title)"

// GetRecommendationByID fetches a single recommendation regardless of status.
func (s *Store) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	const op = "get recommendation by id"
	var recs []models.Recommendation
	q := s.db.From(store.TableRecommendations).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "")
	if err := s.run(ctx, op, store.TableRecommendations, q, &recs); err != nil {
		return nil, err
	}
	return one(op, store.TableRecommendations, recs)
}

// GetUserRecommendations lists a user's recommendations, newest first.
func (s *Store) GetUserRecommendations(ctx context.Context, userID uuid.UUID, filter store.RecommendationFilter) ([]models.Recommendation, error) {
	const op = "get user recommendations"
	columns := "*"
	if filter.WithLinkedProject {
		columns = linkedProjectColumns
	}
	q := s.db.From(store.TableRecommendations).
		Select(columns, "", false).
		Eq("user_id", userID.String())
	if status, ok := filter.StatusFilter(); ok {
		q = q.Eq("status", string(status))
	}
	q = q.Order("created_at", newestFirst)

	recs := []models.Recommendation{}
	if err := s.run(ctx, op, store.TableRecommendations, q, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRecommendation inserts rec and returns the persisted row.
func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	const op = "create recommendation"
	row := *rec
	row.Status = row.Status.OrDefault()
	var recs []models.Recommendation
	if err := s.insert(ctx, op, store.TableRecommendations, row, &recs); err != nil {
		return nil, err
	}
	return one(op, store.TableRecommendations, recs)
}

// UpdateRecommendation applies patch to the recommendation with the given id and
// returns the updated row. Moderation goes through here by patching status.
func (s *Store) UpdateRecommendation(ctx context.Context, id uuid.UUID, patch models.RecommendationPatch) (*models.Recommendation, error) {
	const op = "update recommendation"
	var recs []models.Recommendation
	if err := s.update(ctx, op, store.TableRecommendations, id, patch.Fields(), &recs); err != nil {
		return nil, err
	}
	return one(op, store.TableRecommendations, recs)
}
