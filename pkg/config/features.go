package config

import (
	"context"

	"github.com/goliatone/go-accountctl/pkg/types"
	featuregate "github.com/goliatone/go-featuregate/gate"
)

// FeatureFlags is a static feature gate resolved once from the environment.
// Unknown keys are disabled.
type FeatureFlags map[string]bool

var _ featuregate.FeatureGate = FeatureFlags(nil)

// Enabled implements featuregate.FeatureGate. Scope options are ignored.
func (f FeatureFlags) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	return f[key], nil
}

// Features exposes the env-backed toggles as a feature gate.
func (c Config) Features() FeatureFlags {
	return FeatureFlags{
		types.FeatureRollbackOnProfileFailure: c.RollbackOnProfileFailure,
	}
}
