package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

func TestProjectsAreFilteredAndOrdered(t *testing.T) {
	s := New("")
	ctx := context.Background()
	user, err := s.CreateUser(ctx, &models.User{Email: "alice@example.com", FullName: "Alice"})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []struct {
		title  string
		status models.ProjectStatus
	}{{"first", models.ProjectStatusPublished}, {"draft", models.ProjectStatusDraft}, {"last", models.ProjectStatusPublished}} {
		_, err := s.CreateProject(ctx, &models.Project{
			UserID:    user.ID,
			Title:     p.title,
			Status:    p.status,
			Featured:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	published, err := s.GetUserProjects(ctx, user.ID, store.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "last", published[0].Title)
	assert.Equal(t, "first", published[1].Title)

	featured, err := s.GetFeaturedProjects(ctx, 1)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.NotNil(t, featured[0].Owner)
	assert.Equal(t, "Alice", featured[0].Owner.FullName)
}

func TestUpdateMergesPatch(t *testing.T) {
	s := New("")
	ctx := context.Background()
	user, err := s.CreateUser(ctx, &models.User{Email: "bob@example.com", FullName: "Bob"})
	require.NoError(t, err)

	title := "Group PM"
	updated, err := s.UpdateUser(ctx, user.ID, models.UserPatch{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Group PM", *updated.Title)
	assert.Equal(t, "Bob", updated.FullName)

	byUsername, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = s.UpdateUser(ctx, uuid.New(), models.UserPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrNoRows)
	_, err = s.UpdateUser(ctx, user.ID, models.UserPatch{})
	assert.ErrorIs(t, err, store.ErrEmptyPatch)
}

func TestFailInjection(t *testing.T) {
	s := New("")
	boom := errors.New("boom")
	s.Fail("get user by email", boom)

	_, err := s.GetUserByEmail(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Calls("get user by email"))

	s.Fail("get user by email", nil)
	_, err = s.GetUserByEmail(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, store.ErrNoRows)
}

func TestCreateAppliesStatusDefaults(t *testing.T) {
	s := New("")
	ctx := context.Background()
	userID := uuid.New()

	project, err := s.CreateProject(ctx, &models.Project{UserID: userID, Title: "Pricing"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	rec, err := s.CreateRecommendation(ctx, &models.Recommendation{UserID: userID, RecommenderName: "Bob", RecommendationText: "Solid"})
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationStatusPending, rec.Status)
}

func TestRowsDoNotShareSlicesWithCallers(t *testing.T) {
	s := New("")
	ctx := context.Background()
	userID := uuid.New()

	tech := []string{"SQL"}
	project, err := s.CreateProject(ctx, &models.Project{UserID: userID, Title: "Pricing", TechnologiesUsed: tech})
	require.NoError(t, err)

	tech[0] = "changed after create"
	project.TechnologiesUsed[0] = "changed on returned row"

	read, err := s.GetProjectByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, []string(read.TechnologiesUsed))

	read.TechnologiesUsed[0] = "changed on read row"
	listed, err := s.GetUserProjects(ctx, userID, store.ProjectFilter{AnyStatus: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"SQL"}, []string(listed[0].TechnologiesUsed))

	skills := []string{"Discovery"}
	rec, err := s.CreateRecommendation(ctx, &models.Recommendation{
		UserID: userID, RecommenderName: "Bob", RecommendationText: "Solid", SkillsHighlighted: skills,
		Status: models.RecommendationStatusApproved,
	})
	require.NoError(t, err)
	skills[0] = "changed after create"

	recs, err := s.GetUserRecommendations(ctx, userID, store.RecommendationFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Discovery"}, []string(recs[0].SkillsHighlighted))

	recs[0].SkillsHighlighted[0] = "changed on read row"
	again, err := s.GetRecommendationByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Discovery"}, []string(again.SkillsHighlighted))
}
