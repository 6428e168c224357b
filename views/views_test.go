package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmfolio/web/models"
	"pmfolio/web/profile"
)

func TestRenderProfile(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	title := "Senior PM"
	company := "Acme"
	page := profile.Page{
		State: profile.StateReady,
		Data: &profile.ViewModel{
			User: &models.User{FullName: "Alice <Doe>", Title: &title},
			Projects: []models.Project{{
				Title:            "Checkout redesign",
				Company:          &company,
				TechnologiesUsed: []string{"Figma"},
			}},
			Recommendations: []models.Recommendation{{
				RecommenderName:    "Dana",
				RecommendationText: "Shipped ahead of plan.",
				LinkedProject:      &models.ProjectRef{Title: "Checkout redesign"},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageProfile, page))
	html := buf.String()

	assert.Contains(t, html, "Alice &lt;Doe&gt;")
	assert.Contains(t, html, "Senior PM")
	assert.Contains(t, html, "Checkout redesign")
	assert.Contains(t, html, "Shipped ahead of plan.")
	assert.Contains(t, html, "On: Checkout redesign")
	assert.Contains(t, html, ">A<", "initial shown without an avatar")
}

func TestRenderStatusPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageNotFound, profile.Page{Message: profile.MessageNotFound}))
	assert.Contains(t, buf.String(), "User not found")

	buf.Reset()
	require.NoError(t, r.Render(&buf, PageIndex, profile.LandingPage{}))
	assert.Contains(t, buf.String(), "No featured projects yet.")

	assert.Error(t, r.Render(&buf, "missing", nil))
}
