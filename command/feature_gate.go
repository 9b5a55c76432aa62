package command

import (
	"context"

	"github.com/goliatone/go-accountctl/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

const featureRollbackOnProfileFailure = types.FeatureRollbackOnProfileFailure

// featureEnabled resolves key against gate. Without a gate the fallback is
// returned.
func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, fallback bool) (bool, error) {
	if gate == nil {
		return fallback, nil
	}
	return gate.Enabled(ctx, key)
}
