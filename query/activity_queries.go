package query

import (
	"context"

	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityFeedQuery renders paginated audit feeds.
type ActivityFeedQuery struct {
	repo types.ActivityRepository
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository) *ActivityFeedQuery {
	return &ActivityFeedQuery{repo: repo}
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityFeedQuery)(nil)

// Query fetches a page of activity logs via the injected repository.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if filter.Pagination.Limit <= 0 {
		filter.Pagination.Limit = defaultActivityLimit
	}
	if filter.Pagination.Limit > maxActivityLimit {
		filter.Pagination.Limit = maxActivityLimit
	}
	if filter.Pagination.Offset < 0 {
		filter.Pagination.Offset = 0
	}
	return q.repo.ListActivity(ctx, filter)
}
