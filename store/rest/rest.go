// Package rest implements the store contract on top of PostgREST, the REST
// gateway in front of the hosted Supabase database.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"pmfolio/web/internal/metrics"
	"pmfolio/web/store"
)

const backendName = "postgrest"

// DefaultTimeout bounds a single query when no timeout option is given.
const DefaultTimeout = 5 * time.Second

// Querier is the part of a Supabase or PostgREST client the store needs.
// Both *supabase.Client and *postgrest.Client satisfy it.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// Store is a store.Store backed by PostgREST.
type Store struct {
	db          Querier
	logger      *logrus.Logger
	timeout     time.Duration
	emailDomain string
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for query failures.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout sets the per-query timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithEmailDomain sets the domain used by GetUserByUsername.
func WithEmailDomain(domain string) Option {
	return func(s *Store) {
		if domain != "" {
			s.emailDomain = domain
		}
	}
}

// New returns a Store issuing queries through db.
func New(db Querier, opts ...Option) *Store {
	s := &Store{
		db:          db,
		logger:      logrus.StandardLogger(),
		timeout:     DefaultTimeout,
		emailDomain: store.DefaultEmailDomain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type executor interface {
	Execute() ([]byte, int64, error)
}

type response struct {
	body []byte
	err  error
}

// run executes q and decodes the JSON array it returns into dest.
// postgrest-go has no context support, so the call runs in its own goroutine
// and its result is dropped if ctx ends first. The abandoned request stays open
// until the client's transport gives up; config.NewRESTClient bounds that with
// a response header timeout, the supabase-go client does not expose its transport.
func (s *Store) run(ctx context.Context, op, table string, q executor, dest interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveQuery(backendName, op, table, start, err, store.ErrNoRows)
	}()

	if err := ctx.Err(); err != nil {
		return s.fail(op, table, err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan response, 1)
	go func() {
		body, _, err := q.Execute()
		done <- response{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return s.fail(op, table, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return s.fail(op, table, res.err)
		}
		if err := json.Unmarshal(res.body, dest); err != nil {
			return s.fail(op, table, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

func (s *Store) fail(op, table string, err error) error {
	s.logger.WithFields(logrus.Fields{
		"backend": backendName,
		"op":      op,
		"table":   table,
	}).WithError(err).Debug("Store query failed")
	return &store.OpError{Op: op, Table: table, Err: err}
}

// one returns the first row, or ErrNoRows when rows is empty.
func one[T any](op, table string, rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, &store.OpError{Op: op, Table: table, Err: store.ErrNoRows}
	}
	return &rows[0], nil
}

// insertPayload turns a model into the column map sent on insert. Zero ids and
// timestamps are left out so the database assigns them, and embedded relations
// are never written.
func insertPayload(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var row map[string]interface{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	if id, ok := row["id"].(string); ok && id == uuid.Nil.String() {
		delete(row, "id")
	}
	zero := time.Time{}.Format(time.RFC3339)
	for _, column := range []string{"created_at", "updated_at"} {
		if ts, ok := row[column].(string); ok && ts == zero {
			delete(row, column)
		}
	}
	delete(row, store.TableUsers)
	delete(row, store.TableProjects)
	return row, nil
}

// updatePayload stamps updated_at onto the patch columns.
func updatePayload(fields map[string]interface{}) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, store.ErrEmptyPatch
	}
	fields["updated_at"] = time.Now().UTC()
	return fields, nil
}

func (s *Store) insert(ctx context.Context, op, table string, v interface{}, dest interface{}) error {
	row, err := insertPayload(v)
	if err != nil {
		return &store.OpError{Op: op, Table: table, Err: err}
	}
	q := s.db.From(table).Insert(row, false, "", "representation", "")
	return s.run(ctx, op, table, q, dest)
}

func (s *Store) update(ctx context.Context, op, table string, id uuid.UUID, fields map[string]interface{}, dest interface{}) error {
	body, err := updatePayload(fields)
	if err != nil {
		return &store.OpError{Op: op, Table: table, Err: err}
	}
	q := s.db.From(table).
		Update(body, "representation", "").
		Eq("id", id.String())
	return s.run(ctx, op, table, q, dest)
}

var newestFirst = &postgrest.OrderOpts{Ascending: false}
