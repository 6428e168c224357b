// Package gormstore implements the store contract directly against Postgres
// through GORM, for deployments that reach the database without the REST gateway.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pmfolio/web/internal/metrics"
	"pmfolio/web/store"
)

const backendName = "gorm"

// DefaultTimeout bounds a single query when no timeout option is given.
const DefaultTimeout = 5 * time.Second

// Store is a store.Store backed by a *gorm.DB.
type Store struct {
	db          *gorm.DB
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

// New returns a Store using db.
func New(db *gorm.DB, opts ...Option) *Store {
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

// run executes fn with a per-query deadline and translates its error.
func (s *Store) run(ctx context.Context, op, table string, fn func(db *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveQuery(backendName, op, table, start, err, store.ErrNoRows)
	}()

	if err := ctx.Err(); err != nil {
		return s.fail(op, table, err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(s.db.WithContext(ctx)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &store.OpError{Op: op, Table: table, Err: store.ErrNoRows}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return s.fail(op, table, err)
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

// patch applies fields to the row with the given id and reloads it into dest.
func (s *Store) patch(ctx context.Context, op, table string, id interface{}, fields map[string]interface{}, dest interface{}) error {
	if len(fields) == 0 {
		return &store.OpError{Op: op, Table: table, Err: store.ErrEmptyPatch}
	}
	fields["updated_at"] = time.Now().UTC()
	return s.run(ctx, op, table, func(db *gorm.DB) error {
		res := db.Table(table).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return db.Where("id = ?", id).First(dest).Error
	})
}
