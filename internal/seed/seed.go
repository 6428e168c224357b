// Package seed fills a store with demo profiles for local development.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

// Options controls how much data Run creates.
type Options struct {
	Users                  int
	ProjectsPerUser        int
	RecommendationsPerUser int
	// Seed makes runs reproducible. Zero picks a random seed.
	Seed int64
	// EmailDomain is used to derive emails from usernames so profiles resolve by email slug.
	EmailDomain string
}

// DefaultOptions returns a small but complete data set.
func DefaultOptions() Options {
	return Options{
		Users:                  5,
		ProjectsPerUser:        3,
		RecommendationsPerUser: 2,
		EmailDomain:            store.DefaultEmailDomain,
	}
}

// Summary counts what Run created.
type Summary struct {
	Users           []models.User
	Projects        int
	Recommendations int
}

// Factory builds fake portfolio rows and persists them through a store.
type Factory struct {
	store  store.Store
	faker  *gofakeit.Faker
	opts   Options
	logger *logrus.Logger
}

// NewFactory returns a Factory writing to s.
func NewFactory(s store.Store, opts Options, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{store: s, faker: gofakeit.New(opts.Seed), opts: opts, logger: logger}
}

// Run creates opts.Users users, each with projects and recommendations.
// The first project of every user is published and featured, every third project stays a draft.
// The first recommendation is approved and linked to the featured project, the rest stay pending.
func (f *Factory) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	for i := 0; i < f.opts.Users; i++ {
		user, err := f.store.CreateUser(ctx, f.BuildUser(i))
		if err != nil {
			return sum, fmt.Errorf("create user %d: %w", i, err)
		}
		sum.Users = append(sum.Users, *user)

		var showcase *models.Project
		for j := 0; j < f.opts.ProjectsPerUser; j++ {
			project, err := f.store.CreateProject(ctx, f.BuildProject(user.ID, j))
			if err != nil {
				return sum, fmt.Errorf("create project for %s: %w", user.Email, err)
			}
			if j == 0 {
				showcase = project
			}
			sum.Projects++
		}

		for j := 0; j < f.opts.RecommendationsPerUser; j++ {
			rec := f.BuildRecommendation(user.ID, j)
			if j == 0 && showcase != nil {
				rec.ProjectID = &showcase.ID
			}
			if _, err := f.store.CreateRecommendation(ctx, rec); err != nil {
				return sum, fmt.Errorf("create recommendation for %s: %w", user.Email, err)
			}
			sum.Recommendations++
		}

		f.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Debug("Seeded profile")
	}
	return sum, nil
}

// BuildUser returns an unsaved user whose email is derived from its username.
func (f *Factory) BuildUser(n int) *models.User {
	username := fmt.Sprintf("%s%d", strings.ToLower(f.faker.Username()), n)
	title := f.faker.RandomString([]string{
		"Product Manager", "Senior Product Manager", "Group Product Manager", "Director of Product",
	})
	bio := f.faker.Paragraph(1, 3, 12, " ")
	location := f.faker.City()
	years := f.faker.Number(1, 15)
	linkedin := "https://www.linkedin.com/in/" + username
	avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID())

	return &models.User{
		Email:           store.EmailForUsername(username, f.opts.EmailDomain),
		Username:        &username,
		FullName:        f.faker.Name(),
		Title:           &title,
		Bio:             &bio,
		Location:        &location,
		YearsExperience: &years,
		LinkedinURL:     &linkedin,
		AvatarURL:       &avatar,
	}
}

// BuildProject returns the n-th unsaved project of userID.
func (f *Factory) BuildProject(userID uuid.UUID, n int) *models.Project {
	description := f.faker.Sentence(12)
	problem := f.faker.Paragraph(1, 2, 14, " ")
	solution := f.faker.Paragraph(1, 2, 14, " ")
	results := fmt.Sprintf("Grew %s by %d%% in %d months", f.faker.RandomString([]string{
		"activation", "retention", "conversion", "NPS",
	}), f.faker.Number(5, 60), f.faker.Number(2, 12))
	company := f.faker.Company()
	duration := f.faker.Number(1, 24)

	status := models.ProjectStatusPublished
	if n%3 == 2 {
		status = models.ProjectStatusDraft
	}
	return &models.Project{
		UserID:           userID,
		Title:            f.faker.AppName() + " " + f.faker.RandomString([]string{"launch", "redesign", "migration", "pricing revamp"}),
		Description:      &description,
		ProblemStatement: &problem,
		Solution:         &solution,
		Results:          &results,
		TechnologiesUsed: []string{"Figma", "Amplitude", f.faker.RandomString([]string{"SQL", "Jira", "Mixpanel", "Looker"})},
		Company:          &company,
		DurationMonths:   &duration,
		ImageURLs:        []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/450", f.faker.UUID())},
		Status:           status,
		Featured:         n == 0,
	}
}

// BuildRecommendation returns the n-th unsaved recommendation for userID.
func (f *Factory) BuildRecommendation(userID uuid.UUID, n int) *models.Recommendation {
	title := f.faker.JobTitle()
	company := f.faker.Company()
	status := models.RecommendationStatusPending
	if n == 0 {
		status = models.RecommendationStatusApproved
	}
	return &models.Recommendation{
		UserID:             userID,
		RecommenderName:    f.faker.Name(),
		RecommenderTitle:   &title,
		RecommenderCompany: &company,
		RecommendationText: f.faker.Paragraph(1, 3, 16, " "),
		SkillsHighlighted:  []string{"Roadmapping", f.faker.RandomString([]string{"Discovery", "Stakeholder management", "Analytics"})},
		Status:             status,
	}
}
