package command

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-accountctl/activity"
	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// AccountDeleteInput describes a confirmed deletion of a previously looked up
// account.
type AccountDeleteInput struct {
	AccountID string
	Email     string
	Confirmed bool
	Result    *AccountDeleteResult
}

// Type implements gocommand.Message.
func (AccountDeleteInput) Type() string {
	return "command.account.delete"
}

// Validate implements gocommand.Message.
func (input AccountDeleteInput) Validate() error {
	switch {
	case strings.TrimSpace(input.AccountID) == "":
		return ErrAccountIDRequired
	case !input.Confirmed:
		return ErrDeleteNotConfirmed
	default:
		return nil
	}
}

// AccountDeleteResult carries the outcome of the best-effort profile cleanup.
// ProfileErr is informational: the account is already gone when it is set.
type AccountDeleteResult struct {
	AccountDeleted bool
	ProfileDeleted bool
	ProfileMissing bool
	ProfileErr     error
}

// AccountDeleteCommand removes the account and then its profile document.
type AccountDeleteCommand struct {
	identity types.IdentityService
	profiles types.ProfileStore
	clock    types.Clock
	sink     types.ActivitySink
	hooks    types.Hooks
	logger   types.Logger
}

// AccountDeleteCommandConfig wires dependencies for the delete command.
type AccountDeleteCommandConfig struct {
	Identity types.IdentityService
	Profiles types.ProfileStore
	Clock    types.Clock
	Activity types.ActivitySink
	Hooks    types.Hooks
	Logger   types.Logger
}

// NewAccountDeleteCommand constructs the delete handler.
func NewAccountDeleteCommand(cfg AccountDeleteCommandConfig) *AccountDeleteCommand {
	return &AccountDeleteCommand{
		identity: cfg.Identity,
		profiles: cfg.Profiles,
		clock:    safeClock(cfg.Clock),
		sink:     cfg.Activity,
		hooks:    cfg.Hooks,
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[AccountDeleteInput] = (*AccountDeleteCommand)(nil)

// Execute deletes the account. Profile deletion failures never fail the
// command; they are reported through the result.
func (c *AccountDeleteCommand) Execute(ctx context.Context, input AccountDeleteInput) error {
	if c.identity == nil {
		return types.ErrMissingIdentityService
	}
	if err := input.Validate(); err != nil {
		return err
	}

	metadata := map[string]any{
		"account_id": input.AccountID,
		"email":      input.Email,
	}
	if err := c.identity.DeleteAccount(ctx, input.AccountID); err != nil {
		c.logger.Debug("accountctl: account delete failed", "account_id", input.AccountID, "err", err.Error())
		if errors.Is(err, types.ErrAccountNotFound) {
			return lookupError(err, metadata)
		}
		return deleteError(err, metadata)
	}

	result := AccountDeleteResult{AccountDeleted: true}
	result.ProfileErr = c.deleteProfile(ctx, input.AccountID)
	switch {
	case result.ProfileErr == nil:
		result.ProfileDeleted = true
	case errors.Is(result.ProfileErr, types.ErrProfileNotFound):
		result.ProfileMissing = true
		c.logger.Info("accountctl: no profile document for account", "account_id", input.AccountID)
	default:
		c.logger.Info("accountctl: profile document delete failed", "account_id", input.AccountID, "error", result.ProfileErr.Error())
	}
	if input.Result != nil {
		*input.Result = result
	}

	occurredAt := now(c.clock)
	logActivity(ctx, c.sink, c.logger, activity.BuildRecord(input.AccountID, "account.deleted", "account", input.AccountID,
		map[string]any{
			"email":           input.Email,
			"profile_deleted": result.ProfileDeleted,
		},
		activity.WithChannel(activityChannel),
		activity.WithOccurredAt(occurredAt),
	))
	emitDeletedHook(ctx, c.hooks, types.AccountEvent{
		Account:    types.Account{ID: input.AccountID, Email: input.Email},
		Action:     "account.deleted",
		OccurredAt: occurredAt,
		Metadata: map[string]any{
			"profile_deleted": result.ProfileDeleted,
		},
	})
	return nil
}

func (c *AccountDeleteCommand) deleteProfile(ctx context.Context, accountID string) error {
	if c.profiles == nil {
		return types.ErrMissingProfileStore
	}
	return c.profiles.DeleteDocument(ctx, accountID)
}
