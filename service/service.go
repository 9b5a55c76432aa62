package service

import (
	"context"

	"github.com/goliatone/go-accountctl/command"
	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/goliatone/go-accountctl/query"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// Service is the entry point for go-accountctl. It wires the Identity Service,
// Profile Store, activity sink and hooks into command/query facades that
// front ends such as the console drive.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	activityRepo types.ActivityRepository
}

// Commands exposes the service command handlers.
type Commands struct {
	AccountCreate *command.AccountCreateCommand
	AccountDelete *command.AccountDeleteCommand
	LogActivity   *command.ActivityLogCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	AccountList   *query.AccountListQuery
	AccountLookup *query.AccountLookupQuery
	ProfileDetail *query.ProfileQuery
	ActivityFeed  *query.ActivityFeedQuery
}

// Config captures all required dependencies so callers can provide their own
// backends (Firebase, bun/sqlite, in-memory fakes).
type Config struct {
	Identity           types.IdentityService
	Profiles           types.ProfileStore
	ActivitySink       types.ActivitySink
	ActivityRepository types.ActivityRepository
	Hooks              types.Hooks
	Clock              types.Clock
	Logger             types.Logger
	// FeatureGate toggles optional workflow behavior such as
	// types.FeatureRollbackOnProfileFailure.
	FeatureGate featuregate.FeatureGate
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}
	s := &Service{
		cfg:          norm,
		activityRepo: actRepo,
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
// Activity sinks and repositories are optional.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.Identity != nil &&
		s.cfg.Profiles != nil
}

// HealthCheck surfaces missing configuration before a session starts.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.Identity == nil {
		return types.ErrMissingIdentityService
	}
	if s.cfg.Profiles == nil {
		return types.ErrMissingProfileStore
	}
	return nil
}

// ActivitySink returns the configured sink so front ends can emit activity
// records for auxiliary workflows.
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	return Commands{
		AccountCreate: command.NewAccountCreateCommand(command.AccountCreateCommandConfig{
			Identity:    s.cfg.Identity,
			Profiles:    s.cfg.Profiles,
			Clock:       s.cfg.Clock,
			Activity:    s.cfg.ActivitySink,
			Hooks:       s.cfg.Hooks,
			Logger:      s.cfg.Logger,
			FeatureGate: s.cfg.FeatureGate,
		}),
		AccountDelete: command.NewAccountDeleteCommand(command.AccountDeleteCommandConfig{
			Identity: s.cfg.Identity,
			Profiles: s.cfg.Profiles,
			Clock:    s.cfg.Clock,
			Activity: s.cfg.ActivitySink,
			Hooks:    s.cfg.Hooks,
			Logger:   s.cfg.Logger,
		}),
		LogActivity: command.NewActivityLogCommand(command.ActivityLogConfig{
			Sink:  s.cfg.ActivitySink,
			Clock: s.cfg.Clock,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		AccountList:   query.NewAccountListQuery(s.cfg.Identity, s.cfg.Logger),
		AccountLookup: query.NewAccountLookupQuery(s.cfg.Identity, s.cfg.Logger),
		ProfileDetail: query.NewProfileQuery(s.cfg.Profiles),
		ActivityFeed:  query.NewActivityFeedQuery(s.activityRepo),
	}
}
