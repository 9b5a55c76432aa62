package query

import (
	"context"

	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// AccountListFilter narrows account enumeration.
type AccountListFilter struct {
	Limit int
}

// Type implements gocommand.Message for query inputs.
func (AccountListFilter) Type() string {
	return "query.account.list"
}

// Validate implements gocommand.Message.
func (AccountListFilter) Validate() error {
	return nil
}

// AccountListQuery enumerates accounts, never returning more than
// types.MaxAccountListLimit entries. Ordering is whatever the Identity
// Service returns.
type AccountListQuery struct {
	identity types.IdentityService
	logger   types.Logger
}

// NewAccountListQuery constructs the list query helper.
func NewAccountListQuery(identity types.IdentityService, logger types.Logger) *AccountListQuery {
	return &AccountListQuery{
		identity: identity,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[AccountListFilter, []types.Account] = (*AccountListQuery)(nil)

// Query delegates to the Identity Service after normalizing the limit.
func (q *AccountListQuery) Query(ctx context.Context, filter AccountListFilter) ([]types.Account, error) {
	if q.identity == nil {
		return nil, types.ErrMissingIdentityService
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	limit := normalizeListLimit(filter.Limit)
	accounts, err := q.identity.ListAccounts(ctx, limit)
	if err != nil {
		q.logger.Debug("accountctl: account list failed", "limit", limit, "err", err.Error())
		return nil, listError(err, limit)
	}
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	q.logger.Debug("accountctl: accounts listed", "count", len(accounts))
	return accounts, nil
}

func normalizeListLimit(limit int) int {
	if limit <= 0 || limit > types.MaxAccountListLimit {
		return types.MaxAccountListLimit
	}
	return limit
}
