package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"pmfolio/web/config"
	"pmfolio/web/internal/seed"
	"pmfolio/web/profile"
	"pmfolio/web/store"
	"pmfolio/web/store/gormstore"
	"pmfolio/web/store/memstore"
	"pmfolio/web/store/rest"
)

// app bundles what every command needs.
type app struct {
	cfg       *config.Config
	log       *logrus.Logger
	store     store.Store
	assembler *profile.Assembler
	close     func() error
}

// setup loads configuration and wires the store. Logs go to logOut so commands
// that print results on stdout can keep them apart.
func setup(logOut io.Writer) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := config.NewLogger(cfg.LogLevel)
	log.SetOutput(logOut)

	s, closeFn, err := newStore(cfg, log)
	if err != nil {
		return nil, err
	}

	resolver, err := profile.NewResolver(cfg.IdentityStrategy, s)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	assembler := profile.NewAssembler(s, resolver,
		profile.WithLogger(log),
		profile.WithFeaturedLimit(cfg.FeaturedLimit),
	)

	return &app{cfg: cfg, log: log, store: s, assembler: assembler, close: closeFn}, nil
}

// newStore builds the backend selected by STORE_DRIVER. The returned func releases it.
func newStore(cfg *config.Config, log *logrus.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverSupabase:
		client, err := config.NewSupabaseClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return rest.New(client,
			rest.WithLogger(log),
			rest.WithTimeout(cfg.QueryTimeout),
			rest.WithEmailDomain(cfg.UsernameEmailDomain),
		), noop, nil

	case config.DriverPostgREST:
		client, err := config.NewRESTClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return rest.New(client,
			rest.WithLogger(log),
			rest.WithTimeout(cfg.QueryTimeout),
			rest.WithEmailDomain(cfg.UsernameEmailDomain),
		), noop, nil

	case config.DriverPostgres:
		db, err := config.OpenDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		return gormstore.New(db,
			gormstore.WithLogger(log),
			gormstore.WithTimeout(cfg.QueryTimeout),
			gormstore.WithEmailDomain(cfg.UsernameEmailDomain),
		), sqlDB.Close, nil

	case config.DriverMemory:
		s := memstore.New(cfg.UsernameEmailDomain)
		opts := seed.DefaultOptions()
		opts.EmailDomain = cfg.UsernameEmailDomain
		sum, err := seed.NewFactory(s, opts, log).Run(context.Background())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		log.WithField("users", len(sum.Users)).Warn("Using in-memory store with demo data")
		return s, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
