package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-accountctl/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// ProfileQueryInput identifies the profile document to load.
type ProfileQueryInput struct {
	AccountID string
}

// ProfileQuery fetches profile documents from stores that support reads.
type ProfileQuery struct {
	reader types.ProfileReader
}

// NewProfileQuery constructs the profile query helper. Stores that do not
// implement types.ProfileReader yield a query that always fails.
func NewProfileQuery(store types.ProfileStore) *ProfileQuery {
	reader, _ := store.(types.ProfileReader)
	return &ProfileQuery{reader: reader}
}

var _ gocommand.Querier[ProfileQueryInput, *types.ProfileDocument] = (*ProfileQuery)(nil)

// Query returns the profile for the supplied account.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.ProfileDocument, error) {
	if q.reader == nil {
		return nil, types.ErrMissingProfileReader
	}
	if strings.TrimSpace(input.AccountID) == "" {
		return nil, types.ErrAccountIDRequired
	}
	return q.reader.GetDocument(ctx, input.AccountID)
}
