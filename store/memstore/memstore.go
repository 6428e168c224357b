// Package memstore is an in-process store.Store for local demos and tests.
// Rows live in memory and vanish with the process.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"pmfolio/web/models"
	"pmfolio/web/store"
)

// Store keeps users, projects and recommendations in memory.
type Store struct {
	mu          sync.RWMutex
	users       []models.User
	projects    []models.Project
	recs        []models.Recommendation
	failures    map[string]error
	calls       map[string]int
	emailDomain string
	now         func() time.Time
	last        time.Time
}

var _ store.Store = (*Store)(nil)

// New returns an empty Store. An empty emailDomain means store.DefaultEmailDomain.
func New(emailDomain string) *Store {
	if emailDomain == "" {
		emailDomain = store.DefaultEmailDomain
	}
	return &Store{
		failures:    make(map[string]error),
		calls:       make(map[string]int),
		emailDomain: emailDomain,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Fail makes every call of op return err until cleared with a nil err.
// op is the operation name used in OpError, e.g. "get user recommendations".
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Calls reports how many times op was invoked.
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// begin records the call and returns the injected failure for op, if any.
// Callers hold s.mu.
func (s *Store) begin(ctx context.Context, op, table string) error {
	s.calls[op]++
	if err := ctx.Err(); err != nil {
		return &store.OpError{Op: op, Table: table, Err: err}
	}
	if err, ok := s.failures[op]; ok {
		return &store.OpError{Op: op, Table: table, Err: err}
	}
	return nil
}

func notFound(op, table string) error {
	return &store.OpError{Op: op, Table: table, Err: store.ErrNoRows}
}

func newestFirst[T any](rows []T, createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

// cloneStrings copies v so stored rows never share a backing array with callers.
// Rows are cloned on the way in and on the way out.
func cloneStrings(v pq.StringArray) pq.StringArray {
	if v == nil {
		return nil
	}
	out := make(pq.StringArray, len(v))
	copy(out, v)
	return out
}

func cloneProject(p models.Project) models.Project {
	p.TechnologiesUsed = cloneStrings(p.TechnologiesUsed)
	p.ImageURLs = cloneStrings(p.ImageURLs)
	return p
}

func cloneRecommendation(r models.Recommendation) models.Recommendation {
	r.SkillsHighlighted = cloneStrings(r.SkillsHighlighted)
	return r
}

// tick returns a creation time strictly after the previous one so rows
// created back to back still sort newest first.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = s.tick()
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

// applyPatch merges column values into row through its JSON form, the same
// shape the remote store receives.
func applyPatch(row interface{}, fields map[string]interface{}) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	var cols map[string]interface{}
	if err := json.Unmarshal(raw, &cols); err != nil {
		return err
	}
	for k, v := range fields {
		cols[k] = v
	}
	if raw, err = json.Marshal(cols); err != nil {
		return err
	}
	return json.Unmarshal(raw, row)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findUser(ctx, "get user by id", func(u models.User) bool { return u.ID == id })
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "get user by email", func(u models.User) bool { return u.Email == email })
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	email := store.EmailForUsername(username, s.emailDomain)
	return s.findUser(ctx, "get user by username", func(u models.User) bool { return u.Email == email })
}

func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.findUser(ctx, "get user by handle", func(u models.User) bool {
		return u.Username != nil && *u.Username == handle
	})
}

func (s *Store) findUser(ctx context.Context, op string, match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableUsers); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, notFound(op, store.TableUsers)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "create user"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableUsers); err != nil {
		return nil, err
	}
	row := *user
	s.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	row.Email = strings.TrimSpace(row.Email)
	s.users = append(s.users, row)
	return &row, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	const op = "update user"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableUsers); err != nil {
		return nil, err
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, &store.OpError{Op: op, Table: store.TableUsers, Err: store.ErrEmptyPatch}
	}
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		row := s.users[i]
		if err := applyPatch(&row, fields); err != nil {
			return nil, &store.OpError{Op: op, Table: store.TableUsers, Err: err}
		}
		row.UpdatedAt = s.now()
		s.users[i] = row
		return &row, nil
	}
	return nil, notFound(op, store.TableUsers)
}

func (s *Store) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	const op = "get project by id"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableProjects); err != nil {
		return nil, err
	}
	for _, p := range s.projects {
		if p.ID == id {
			p := cloneProject(p)
			return &p, nil
		}
	}
	return nil, notFound(op, store.TableProjects)
}

func (s *Store) GetUserProjects(ctx context.Context, userID uuid.UUID, filter store.ProjectFilter) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, "get user projects", store.TableProjects); err != nil {
		return nil, err
	}
	status, filtered := filter.StatusFilter()
	out := []models.Project{}
	for _, p := range s.projects {
		if p.UserID != userID || (filtered && p.Status != status) {
			continue
		}
		out = append(out, cloneProject(p))
	}
	newestFirst(out, func(p models.Project) time.Time { return p.CreatedAt })
	return out, nil
}

func (s *Store) GetFeaturedProjects(ctx context.Context, limit int) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, "get featured projects", store.TableProjects); err != nil {
		return nil, err
	}
	out := []models.Project{}
	for _, p := range s.projects {
		if p.Status != models.ProjectStatusPublished || !p.Featured {
			continue
		}
		for _, u := range s.users {
			if u.ID == p.UserID {
				p.Owner = &models.Owner{ID: u.ID, FullName: u.FullName, Title: u.Title, AvatarURL: u.AvatarURL}
				break
			}
		}
		out = append(out, cloneProject(p))
	}
	newestFirst(out, func(p models.Project) time.Time { return p.CreatedAt })
	if n := store.FeaturedLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, "create project", store.TableProjects); err != nil {
		return nil, err
	}
	row := cloneProject(*project)
	row.Owner = nil
	row.Status = row.Status.OrDefault()
	s.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	s.projects = append(s.projects, row)
	out := cloneProject(row)
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	const op = "update project"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableProjects); err != nil {
		return nil, err
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, &store.OpError{Op: op, Table: store.TableProjects, Err: store.ErrEmptyPatch}
	}
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		row := cloneProject(s.projects[i])
		if err := applyPatch(&row, fields); err != nil {
			return nil, &store.OpError{Op: op, Table: store.TableProjects, Err: err}
		}
		row.UpdatedAt = s.now()
		s.projects[i] = row
		out := cloneProject(row)
		return &out, nil
	}
	return nil, notFound(op, store.TableProjects)
}

func (s *Store) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	const op = "get recommendation by id"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableRecommendations); err != nil {
		return nil, err
	}
	for _, r := range s.recs {
		if r.ID == id {
			r := cloneRecommendation(r)
			return &r, nil
		}
	}
	return nil, notFound(op, store.TableRecommendations)
}

func (s *Store) GetUserRecommendations(ctx context.Context, userID uuid.UUID, filter store.RecommendationFilter) ([]models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, "get user recommendations", store.TableRecommendations); err != nil {
		return nil, err
	}
	status, filtered := filter.StatusFilter()
	out := []models.Recommendation{}
	for _, r := range s.recs {
		if r.UserID != userID || (filtered && r.Status != status) {
			continue
		}
		if filter.WithLinkedProject && r.ProjectID != nil {
			for _, p := range s.projects {
				if p.ID == *r.ProjectID {
					r.LinkedProject = &models.ProjectRef{ID: p.ID, Title: p.Title}
					break
				}
			}
		}
		out = append(out, cloneRecommendation(r))
	}
	newestFirst(out, func(r models.Recommendation) time.Time { return r.CreatedAt })
	return out, nil
}

func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) (*models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, "create recommendation", store.TableRecommendations); err != nil {
		return nil, err
	}
	row := cloneRecommendation(*rec)
	row.LinkedProject = nil
	row.Status = row.Status.OrDefault()
	s.stamp(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	s.recs = append(s.recs, row)
	out := cloneRecommendation(row)
	return &out, nil
}

func (s *Store) UpdateRecommendation(ctx context.Context, id uuid.UUID, patch models.RecommendationPatch) (*models.Recommendation, error) {
	const op = "update recommendation"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(ctx, op, store.TableRecommendations); err != nil {
		return nil, err
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, &store.OpError{Op: op, Table: store.TableRecommendations, Err: store.ErrEmptyPatch}
	}
	for i := range s.recs {
		if s.recs[i].ID != id {
			continue
		}
		row := cloneRecommendation(s.recs[i])
		if err := applyPatch(&row, fields); err != nil {
			return nil, &store.OpError{Op: op, Table: store.TableRecommendations, Err: err}
		}
		row.UpdatedAt = s.now()
		s.recs[i] = row
		out := cloneRecommendation(row)
		return &out, nil
	}
	return nil, notFound(op, store.TableRecommendations)
}
