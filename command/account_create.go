package command

import (
	"context"

	"github.com/goliatone/go-accountctl/activity"
	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// AccountCreateInput captures the payload for creating an account together with
// its Profile Document.
type AccountCreateInput struct {
	Account types.AccountInput
	Profile types.ProfileFields
	Result  *AccountCreateResult
}

// Type implements gocommand.Message.
func (AccountCreateInput) Type() string {
	return "command.account.create"
}

// Validate implements gocommand.Message. Field formats (email shape, password
// strength) are left to the Identity Service.
func (input AccountCreateInput) Validate() error {
	return nil
}

// AccountCreateResult reports how far the create workflow got. Account is set
// as soon as the Identity Service accepted the account, even when the profile
// step later fails.
type AccountCreateResult struct {
	Account    *types.Account
	Profile    *types.ProfileDocument
	RolledBack bool
}

// AccountCreateCommand creates the account and then mirrors its profile.
type AccountCreateCommand struct {
	identity    types.IdentityService
	profiles    types.ProfileStore
	clock       types.Clock
	sink        types.ActivitySink
	hooks       types.Hooks
	logger      types.Logger
	featureGate featuregate.FeatureGate
}

// AccountCreateCommandConfig wires dependencies for the create command.
type AccountCreateCommandConfig struct {
	Identity types.IdentityService
	Profiles types.ProfileStore
	Clock    types.Clock
	Activity types.ActivitySink
	Hooks    types.Hooks
	Logger   types.Logger
	// FeatureGate resolves accounts.rollback_on_profile_failure. When the
	// flag is on, the new account is deleted if its profile document cannot
	// be written. A nil gate leaves the account in place.
	FeatureGate featuregate.FeatureGate
}

// NewAccountCreateCommand constructs the create handler.
func NewAccountCreateCommand(cfg AccountCreateCommandConfig) *AccountCreateCommand {
	return &AccountCreateCommand{
		identity:    cfg.Identity,
		profiles:    cfg.Profiles,
		clock:       safeClock(cfg.Clock),
		sink:        cfg.Activity,
		hooks:       cfg.Hooks,
		logger:      safeLogger(cfg.Logger),
		featureGate: cfg.FeatureGate,
	}
}

var _ gocommand.Commander[AccountCreateInput] = (*AccountCreateCommand)(nil)

// Execute creates the account, then the profile document. A profile failure is
// returned to the caller but the account is kept unless rollback is enabled.
func (c *AccountCreateCommand) Execute(ctx context.Context, input AccountCreateInput) error {
	if c.identity == nil {
		return types.ErrMissingIdentityService
	}
	if c.profiles == nil {
		return types.ErrMissingProfileStore
	}
	if err := input.Validate(); err != nil {
		return err
	}

	accountInput := input.Account
	accountInput.Email = types.NormalizeEmail(accountInput.Email)

	created, err := c.identity.CreateAccount(ctx, accountInput)
	if err != nil {
		c.logger.Debug("accountctl: account create failed", "email", accountInput.Email, "err", err.Error())
		return createError(err, map[string]any{"email": accountInput.Email})
	}
	if input.Result != nil {
		input.Result.Account = created
	}
	c.logger.Debug("accountctl: account created", "account_id", created.ID)

	occurredAt := now(c.clock)
	doc := types.NewProfileDocument(*created, input.Profile, occurredAt)
	if err := c.profiles.CreateDocument(ctx, doc); err != nil {
		c.logger.Debug("accountctl: profile document create failed", "account_id", created.ID, "err", err.Error())
		logActivity(ctx, c.sink, c.logger, activity.BuildRecord(created.ID, "profile.create_failed", "profile", created.ID,
			map[string]any{"error": err.Error()},
			activity.WithChannel(activityChannel),
			activity.WithOccurredAt(occurredAt),
		))
		metadata := map[string]any{"account_id": created.ID}
		if c.rollbackEnabled(ctx) {
			rolledBack := c.rollbackAccount(ctx, created.ID)
			metadata["rolled_back"] = rolledBack
			if input.Result != nil {
				input.Result.RolledBack = rolledBack
			}
		}
		return profileCreateError(err, metadata)
	}
	if input.Result != nil {
		input.Result.Profile = &doc
	}

	logActivity(ctx, c.sink, c.logger, activity.BuildRecord(created.ID, "account.created", "account", created.ID,
		map[string]any{
			"email":           created.Email,
			"display_name":    created.DisplayName,
			"education_level": doc.EducationLevel,
			"industrial_area": doc.IndustrialArea,
		},
		activity.WithChannel(activityChannel),
		activity.WithOccurredAt(occurredAt),
	))
	emitCreatedHook(ctx, c.hooks, types.AccountEvent{
		Account:    *created,
		Action:     "account.created",
		OccurredAt: occurredAt,
	})
	return nil
}

func (c *AccountCreateCommand) rollbackEnabled(ctx context.Context) bool {
	enabled, err := featureEnabled(ctx, c.featureGate, featureRollbackOnProfileFailure, false)
	if err != nil {
		c.logger.Error("accountctl: feature gate failed", err, "feature", featureRollbackOnProfileFailure)
		return false
	}
	return enabled
}

func (c *AccountCreateCommand) rollbackAccount(ctx context.Context, id string) bool {
	if err := c.identity.DeleteAccount(ctx, id); err != nil {
		c.logger.Error("accountctl: account rollback failed", err, "account_id", id)
		return false
	}
	c.logger.Info("accountctl: account rolled back", "account_id", id)
	return true
}
