package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pmfolio/web/models"
	"pmfolio/web/store"
	"pmfolio/web/store/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// seedAlice stores alice with two published projects, one draft and one approved recommendation.
func seedAlice(t *testing.T, s *memstore.Store) *models.User {
	t.Helper()
	ctx := context.Background()
	handle := "alice"
	alice, err := s.CreateUser(ctx, &models.User{Email: "alice@example.com", Username: &handle, FullName: "Alice Doe"})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	projects := []struct {
		title  string
		status models.ProjectStatus
		at     time.Duration
	}{
		{"Search relevance", models.ProjectStatusPublished, 24 * time.Hour},
		{"Unfinished pricing page", models.ProjectStatusDraft, 72 * time.Hour},
		{"Checkout redesign", models.ProjectStatusPublished, 48 * time.Hour},
	}
	var linked uuid.UUID
	for _, p := range projects {
		created, err := s.CreateProject(ctx, &models.Project{UserID: alice.ID, Title: p.title, Status: p.status, CreatedAt: base.Add(p.at)})
		require.NoError(t, err)
		if p.title == "Checkout redesign" {
			linked = created.ID
		}
	}

	_, err = s.CreateRecommendation(ctx, &models.Recommendation{
		UserID:             alice.ID,
		ProjectID:          &linked,
		RecommenderName:    "Dana",
		RecommendationText: "Alice shipped the checkout redesign ahead of plan.",
		Status:             models.RecommendationStatusApproved,
	})
	require.NoError(t, err)
	_, err = s.CreateRecommendation(ctx, &models.Recommendation{
		UserID:             alice.ID,
		RecommenderName:    "Eli",
		RecommendationText: "Still waiting on moderation.",
		Status:             models.RecommendationStatusPending,
	})
	require.NoError(t, err)
	return alice
}

func newAssembler(t *testing.T, s *memstore.Store, strategy string, opts ...Option) *Assembler {
	t.Helper()
	r, err := NewResolver(strategy, s)
	require.NoError(t, err)
	return NewAssembler(s, r, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestLoadReadyShowsOnlyPublishedNewestFirst(t *testing.T) {
	s := memstore.New("")
	alice := seedAlice(t, s)

	var transitions []State
	a := newAssembler(t, s, StrategyEmailSlug, WithObserver(func(st State) { transitions = append(transitions, st) }))

	page := a.Load(context.Background(), "alice")
	require.Equal(t, StateReady, page.State)
	require.NotNil(t, page.Data)
	assert.Empty(t, page.Message)
	assert.Equal(t, alice.ID, page.Data.User.ID)

	require.Len(t, page.Data.Projects, 2)
	assert.Equal(t, "Checkout redesign", page.Data.Projects[0].Title)
	assert.Equal(t, "Search relevance", page.Data.Projects[1].Title)
	for _, p := range page.Data.Projects {
		assert.Equal(t, models.ProjectStatusPublished, p.Status)
	}

	require.Len(t, page.Data.Recommendations, 1)
	rec := page.Data.Recommendations[0]
	assert.Equal(t, "Dana", rec.RecommenderName)
	require.NotNil(t, rec.LinkedProject)
	assert.Equal(t, "Checkout redesign", rec.LinkedProject.Title)

	assert.Equal(t, []State{StateLoading, StateReady}, transitions)
}

func TestLoadNotFound(t *testing.T) {
	s := memstore.New("")
	seedAlice(t, s)
	a := newAssembler(t, s, StrategyEmailSlug)

	page := a.Load(context.Background(), "nobody")
	assert.Equal(t, StateNotFound, page.State)
	assert.Equal(t, MessageNotFound, page.Message)
	assert.Nil(t, page.Data)
	assert.NoError(t, page.Err)
	assert.Zero(t, s.Calls("get user projects"))
	assert.Zero(t, s.Calls("get user recommendations"))
}

func TestLoadRecommendationFailureDiscardsProjects(t *testing.T) {
	s := memstore.New("")
	seedAlice(t, s)
	boom := errors.New("(500) upstream unavailable")
	s.Fail("get user recommendations", boom)
	a := newAssembler(t, s, StrategyEmailSlug)

	page := a.Load(context.Background(), "alice")
	assert.Equal(t, StateError, page.State)
	assert.Equal(t, MessageLoadFailed, page.Message)
	assert.Nil(t, page.Data, "no partial projects list")
	assert.ErrorIs(t, page.Err, boom)
}

func TestLoadUserLookupFailure(t *testing.T) {
	s := memstore.New("")
	seedAlice(t, s)
	boom := errors.New("(42501) permission denied")
	s.Fail("get user by handle", boom)
	a := newAssembler(t, s, StrategyUsername)

	page := a.Load(context.Background(), "alice")
	assert.Equal(t, StateError, page.State)
	assert.ErrorIs(t, page.Err, boom)
	assert.False(t, store.IsNotFound(page.Err))
}

func TestLoadEmptyParamStaysIdle(t *testing.T) {
	s := memstore.New("")
	var transitions []State
	a := newAssembler(t, s, StrategyEmailSlug, WithObserver(func(st State) { transitions = append(transitions, st) }))

	page := a.Load(context.Background(), "   ")
	assert.Equal(t, StateIdle, page.State)
	assert.Empty(t, transitions)
}

func TestResolverStrategies(t *testing.T) {
	s := memstore.New("")
	alice := seedAlice(t, s)

	tests := []struct {
		name     string
		strategy string
		param    string
		want     State
	}{
		{name: "id", strategy: StrategyID, param: alice.ID.String(), want: StateReady},
		{name: "malformed id", strategy: StrategyID, param: "alice", want: StateNotFound},
		{name: "unknown id", strategy: StrategyID, param: uuid.NewString(), want: StateNotFound},
		{name: "email slug", strategy: StrategyEmailSlug, param: "alice", want: StateReady},
		{name: "default strategy", strategy: "", param: "alice", want: StateReady},
		{name: "username column", strategy: StrategyUsername, param: "alice", want: StateReady},
		{name: "username miss", strategy: StrategyUsername, param: "bob", want: StateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newAssembler(t, s, tt.strategy).Load(context.Background(), tt.param)
			assert.Equal(t, tt.want, page.State)
		})
	}

	_, err := NewResolver("ldap", s)
	assert.Error(t, err)
}

func TestLanding(t *testing.T) {
	s := memstore.New("")
	alice := seedAlice(t, s)
	ctx := context.Background()
	for i := 0; i < 8; i++ {
		_, err := s.CreateProject(ctx, &models.Project{UserID: alice.ID, Title: "Featured", Status: models.ProjectStatusPublished, Featured: true})
		require.NoError(t, err)
	}

	a := newAssembler(t, s, StrategyEmailSlug)
	landing := a.Landing(ctx)
	assert.Len(t, landing.Featured, store.DefaultFeaturedLimit)

	a = newAssembler(t, s, StrategyEmailSlug, WithFeaturedLimit(2))
	assert.Len(t, a.Landing(ctx).Featured, 2)

	s.Fail("get featured projects", errors.New("down"))
	landing = a.Landing(ctx)
	assert.NotNil(t, landing.Featured)
	assert.Empty(t, landing.Featured)
}
