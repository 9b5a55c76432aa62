package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// AccountLookupInput locates an account by email.
type AccountLookupInput struct {
	Email string
}

// Type implements gocommand.Message for query inputs.
func (AccountLookupInput) Type() string {
	return "query.account.lookup"
}

// Validate implements gocommand.Message.
func (input AccountLookupInput) Validate() error {
	if strings.TrimSpace(input.Email) == "" {
		return ErrAccountEmailRequired
	}
	return nil
}

// AccountLookupQuery resolves an email to its account.
type AccountLookupQuery struct {
	identity types.IdentityService
	logger   types.Logger
}

// NewAccountLookupQuery constructs the lookup helper.
func NewAccountLookupQuery(identity types.IdentityService, logger types.Logger) *AccountLookupQuery {
	return &AccountLookupQuery{
		identity: identity,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[AccountLookupInput, *types.Account] = (*AccountLookupQuery)(nil)

// Query returns the account owning the email address.
func (q *AccountLookupQuery) Query(ctx context.Context, input AccountLookupInput) (*types.Account, error) {
	if q.identity == nil {
		return nil, types.ErrMissingIdentityService
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := types.NormalizeEmail(input.Email)
	account, err := q.identity.FindAccountByEmail(ctx, email)
	if err != nil {
		q.logger.Debug("accountctl: account lookup failed", "email", email, "err", err.Error())
		return nil, lookupError(err, email)
	}
	if account == nil {
		return nil, lookupError(types.ErrAccountNotFound, email)
	}
	return account, nil
}
