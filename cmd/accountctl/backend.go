package main

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-accountctl/accounts"
	"github.com/goliatone/go-accountctl/activity"
	"github.com/goliatone/go-accountctl/adapter/firebase"
	"github.com/goliatone/go-accountctl/migrations"
	"github.com/goliatone/go-accountctl/pkg/config"
	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/goliatone/go-accountctl/profile"
)

// backend bundles the collaborators a session runs against.
type backend struct {
	identity types.IdentityService
	profiles types.ProfileStore
	sink     types.ActivitySink
	closer   func() error
}

func (b *backend) close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}

func openFirebase(ctx context.Context, cfg *config.Config, logger types.Logger) (*backend, error) {
	clients, err := firebase.NewApp(ctx, cfg.CredentialsPath, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	return &backend{
		identity: firebase.NewIdentity(clients.Auth),
		profiles: firebase.NewProfiles(clients.Firestore, cfg.ProfileCollection),
		sink: &activity.SanitizedSink{
			Sink:   &activity.LogSink{Logger: logger, Clock: types.SystemClock{}},
			Masker: activity.DefaultMasker(),
		},
		closer: clients.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger types.Logger) (*backend, error) {
	sqldb, err := sql.Open(config.SQLiteDriver, cfg.SQLiteDSN)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)

	fail := func(err error) (*backend, error) {
		return nil, errors.Join(err, sqldb.Close())
	}
	db, err := migrations.Migrate(ctx, cfg, sqldb)
	if err != nil {
		return fail(err)
	}
	identity, err := accounts.NewRepository(accounts.RepositoryConfig{DB: db})
	if err != nil {
		return fail(err)
	}
	profiles, err := profile.NewRepository(profile.RepositoryConfig{DB: db})
	if err != nil {
		return fail(err)
	}
	audit, err := activity.NewRepository(activity.RepositoryConfig{DB: db})
	if err != nil {
		return fail(err)
	}
	logger.Debug("accountctl: sqlite backend ready", "dsn", cfg.SQLiteDSN)
	return &backend{
		identity: identity,
		profiles: profiles,
		sink:     audit,
		closer:   db.Close,
	}, nil
}
