// Package profile assembles the public profile and landing pages from the store.
//
// A profile load moves idle -> loading -> {ready | not_found | error}. Only a
// ready page carries data; a failed load never exposes partially fetched rows.
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pmfolio/web/internal/metrics"
	"pmfolio/web/models"
	"pmfolio/web/store"
)

// State is the lifecycle tag of a page load.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateNotFound State = "not_found"
	StateError    State = "error"
)

// Messages shown on the terminal failure states.
const (
	MessageNotFound   = "User not found"
	MessageLoadFailed = "Failed to load user profile"
)

// ViewModel is everything a ready profile page renders.
type ViewModel struct {
	User            *models.User            `json:"user"`
	Projects        []models.Project        `json:"projects"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// Page is the outcome of a profile load.
type Page struct {
	State   State      `json:"state"`
	Message string     `json:"message,omitempty"`
	Data    *ViewModel `json:"data,omitempty"`

	// Err is the upstream failure behind StateError.
	Err error `json:"-"`
}

// LandingPage is the view model of the landing page.
type LandingPage struct {
	Featured []models.Project `json:"featured"`
}

// Assembler loads pages from a store.
type Assembler struct {
	store         store.Store
	resolver      Resolver
	logger        *logrus.Logger
	featuredLimit int
	observe       func(State)
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFeaturedLimit sets how many projects the landing page shows.
func WithFeaturedLimit(n int) Option {
	return func(a *Assembler) { a.featuredLimit = n }
}

// WithObserver registers fn to be called on every state transition of a load.
func WithObserver(fn func(State)) Option {
	return func(a *Assembler) { a.observe = fn }
}

// NewAssembler returns an Assembler reading from s and resolving route parameters with r.
func NewAssembler(s store.Store, r Resolver, opts ...Option) *Assembler {
	a := &Assembler{
		store:         s,
		resolver:      r,
		logger:        logrus.StandardLogger(),
		featuredLimit: store.DefaultFeaturedLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assembler) transition(to State) {
	if a.observe != nil {
		a.observe(to)
	}
}

// Load assembles the profile page for param.
func (a *Assembler) Load(ctx context.Context, param string) Page {
	param = strings.TrimSpace(param)
	if param == "" {
		return Page{State: StateIdle}
	}
	a.transition(StateLoading)

	page := a.load(ctx, param)
	a.transition(page.State)
	metrics.ProfileLoads.WithLabelValues(string(page.State)).Inc()
	return page
}

func (a *Assembler) load(ctx context.Context, param string) Page {
	log := a.logger.WithField("param", param)

	user, err := a.resolver.Resolve(ctx, param)
	switch {
	case store.IsNotFound(err):
		log.Info("Profile not found")
		return Page{State: StateNotFound, Message: MessageNotFound}
	case err != nil:
		log.WithError(err).Error("Failed to resolve profile user")
		return Page{State: StateError, Message: MessageLoadFailed, Err: err}
	}

	var (
		projects []models.Project
		recs     []models.Recommendation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = a.store.GetUserProjects(gctx, user.ID, store.ProjectFilter{Status: models.ProjectStatusPublished})
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = a.store.GetUserRecommendations(gctx, user.ID, store.RecommendationFilter{
			Status:            models.RecommendationStatusApproved,
			WithLinkedProject: true,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to load profile data")
		return Page{State: StateError, Message: MessageLoadFailed, Err: err}
	}

	if projects == nil {
		projects = []models.Project{}
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	return Page{
		State: StateReady,
		Data:  &ViewModel{User: user, Projects: projects, Recommendations: recs},
	}
}

// Landing assembles the landing page. A failed query degrades to an empty list.
func (a *Assembler) Landing(ctx context.Context) LandingPage {
	projects, err := a.store.GetFeaturedProjects(ctx, a.featuredLimit)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.logger.WithError(err).Error("Failed to load featured projects")
		}
		return LandingPage{Featured: []models.Project{}}
	}
	return LandingPage{Featured: projects}
}
