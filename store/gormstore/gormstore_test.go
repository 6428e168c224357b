package gormstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func newMockStore(t *testing.T, opts ...Option) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := setupMockDB(t)
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	return New(db, append([]Option{WithLogger(quiet)}, opts...)...), mock
}

var userColumns = []string{"id", "email", "username", "full_name", "title", "created_at", "updated_at"}

func TestGetUserByEmail(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name         string
		mockBehavior func()
		wantNotFound bool
	}{
		{
			name: "Success",
			mockBehavior: func() {
				rows := sqlmock.NewRows(userColumns).
					AddRow(id.String(), "alice@example.com", "alice", "Alice Doe", "Product Manager", now, now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("alice@example.com", 1).
					WillReturnRows(rows)
			},
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
					WithArgs("alice@example.com", 1).
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := s.GetUserByEmail(ctx, "alice@example.com")

			if tt.wantNotFound {
				assert.Nil(t, user)
				assert.True(t, store.IsNotFound(err))
			} else if assert.NoError(t, err) {
				assert.Equal(t, id, user.ID)
				assert.Equal(t, "Alice Doe", user.FullName)
				require.NotNil(t, user.Username)
				assert.Equal(t, "alice", *user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUserByUsernameUsesEmailDomain(t *testing.T) {
	s, mock := newMockStore(t, WithEmailDomain("pmfolio.dev"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("alice@pmfolio.dev", 1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.NewString(), "alice@pmfolio.dev", nil, "Alice", nil, time.Now(), time.Now()))

	user, err := s.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@pmfolio.dev", user.Email)
	assert.Nil(t, user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByHandle(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := s.GetUserByHandle(context.Background(), "alice")
	assert.ErrorIs(t, err, store.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseErrorPassesThrough(t *testing.T) {
	s, mock := newMockStore(t)
	dbErr := errors.New("connection refused")
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WithArgs(id, 1).
		WillReturnError(dbErr)

	user, err := s.GetUserByID(context.Background(), id)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, store.IsNotFound(err))

	var opErr *store.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "get user by id", opErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserProjects(t *testing.T) {
	s, mock := newMockStore(t)
	userID := uuid.New()
	newer, older := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("zero filter selects published", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "title", "technologies_used", "image_urls", "status", "featured", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "newer", "{Figma,SQL}", "{}", "published", true, newer).
			AddRow(uuid.NewString(), userID.String(), "older", "{}", "{}", "published", false, older)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`)).
			WithArgs(userID, "published").
			WillReturnRows(rows)

		projects, err := s.GetUserProjects(context.Background(), userID, store.ProjectFilter{})
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "newer", projects[0].Title)
		assert.Equal(t, []string{"Figma", "SQL"}, []string(projects[0].TechnologiesUsed))
		assert.Equal(t, models.ProjectStatusPublished, projects[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("any status drops the status condition", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE user_id = $1 ORDER BY created_at DESC`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		projects, err := s.GetUserProjects(context.Background(), userID, store.ProjectFilter{AnyStatus: true})
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetFeaturedProjectsPreloadsOwner(t *testing.T) {
	s, mock := newMockStore(t)
	owner := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE .*status = \$1 AND featured = \$2.*ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("published", true, store.DefaultFeaturedLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status", "featured"}).
			AddRow(uuid.NewString(), owner.String(), "Checkout redesign", "published", true))
	mock.ExpectQuery(`SELECT "id","full_name","title","avatar_url" FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "title", "avatar_url"}).
			AddRow(owner.String(), "Alice Doe", "Senior PM", nil))

	projects, err := s.GetFeaturedProjects(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.NotNil(t, projects[0].Owner)
	assert.Equal(t, "Alice Doe", projects[0].Owner.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProjectAssignsID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := &models.Project{UserID: uuid.New(), Title: "Onboarding", Status: models.ProjectStatusDraft}
	created, err := s.CreateProject(context.Background(), in)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, uuid.Nil, in.ID, "caller's value is not mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithoutStatusUsesDefault(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	project, err := s.CreateProject(context.Background(), &models.Project{UserID: uuid.New(), Title: "Pricing"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "recommendations"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	rec, err := s.CreateRecommendation(context.Background(), &models.Recommendation{
		UserID: uuid.New(), RecommenderName: "Dana", RecommendationText: "Sharp",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationStatusPending, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProject(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()
	published := models.ProjectStatusPublished
	patch := models.ProjectPatch{Status: &published}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "projects" SET .*WHERE id = `).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects" WHERE id = $1`)).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
				AddRow(id.String(), "Onboarding", "published"))

		project, err := s.UpdateProject(context.Background(), id, patch)
		require.NoError(t, err)
		assert.Equal(t, models.ProjectStatusPublished, project.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown id", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "projects" SET .*WHERE id = `).
			WillReturnResult(sqlmock.NewResult(0, 0))

		project, err := s.UpdateProject(context.Background(), id, patch)
		assert.Nil(t, project)
		assert.ErrorIs(t, err, store.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty patch", func(t *testing.T) {
		_, err := s.UpdateProject(context.Background(), id, models.ProjectPatch{})
		assert.ErrorIs(t, err, store.ErrEmptyPatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserRecommendationsWithLinkedProject(t *testing.T) {
	s, mock := newMockStore(t)
	userID, projectID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "recommendations" WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`)).
		WithArgs(userID, "approved").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id", "recommender_name", "recommendation_text", "skills_highlighted", "status"}).
			AddRow(uuid.NewString(), userID.String(), projectID.String(), "Dana", "Great partner", "{Roadmapping}", "approved").
			AddRow(uuid.NewString(), userID.String(), nil, "Eli", "Clear thinker", "{}", "approved"))
	mock.ExpectQuery(`SELECT "id","title" FROM "projects" WHERE "projects"."id" = \$1`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(projectID.String(), "Onboarding revamp"))

	recs, err := s.GetUserRecommendations(context.Background(), userID, store.RecommendationFilter{WithLinkedProject: true})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.NotNil(t, recs[0].LinkedProject)
	assert.Equal(t, "Onboarding revamp", recs[0].LinkedProject.Title)
	assert.Nil(t, recs[1].LinkedProject)
	assert.Nil(t, recs[1].ProjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryTimeout(t *testing.T) {
	s, mock := newMockStore(t, WithTimeout(20*time.Millisecond))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "projects"`)).
		WillDelayFor(500 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetFeaturedProjects(context.Background(), 6)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCanceledContextSkipsQuery(t *testing.T) {
	s, mock := newMockStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
