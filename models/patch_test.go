package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPatchFieldsOnlyCarrySetColumns(t *testing.T) {
	title := "Senior PM"
	assert.Equal(t, map[string]interface{}{"title": "Senior PM"}, UserPatch{Title: &title}.Fields())
	assert.Empty(t, UserPatch{}.Fields())

	published := ProjectStatusPublished
	featured := false
	tech := []string{"SQL"}
	fields := ProjectPatch{Status: &published, Featured: &featured, TechnologiesUsed: &tech}.Fields()
	assert.Equal(t, map[string]interface{}{
		"status":            "published",
		"featured":          false,
		"technologies_used": pq.StringArray{"SQL"},
	}, fields)
	assert.NotContains(t, fields, "updated_at")

	projectID := uuid.New()
	approved := RecommendationStatusApproved
	assert.Equal(t, map[string]interface{}{
		"project_id": projectID.String(),
		"status":     "approved",
	}, RecommendationPatch{ProjectID: &projectID, Status: &approved}.Fields())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, ProjectStatusDraft.Valid())
	assert.False(t, ProjectStatus("archived").Valid())
	assert.True(t, RecommendationStatusRejected.Valid())
	assert.False(t, RecommendationStatus("").Valid())

	assert.Equal(t, ProjectStatusDraft, ProjectStatus("").OrDefault())
	assert.Equal(t, ProjectStatusPublished, ProjectStatusPublished.OrDefault())
	assert.Equal(t, RecommendationStatusPending, RecommendationStatus("").OrDefault())
	assert.Equal(t, RecommendationStatusRejected, RecommendationStatusRejected.OrDefault())
}

func TestUserInitial(t *testing.T) {
	assert.Equal(t, "É", User{FullName: "Émile"}.Initial())
	assert.Equal(t, "?", User{}.Initial())
}
