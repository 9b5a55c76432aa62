package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, WithEnvFiles(), WithLookup(envMap(nil)))

	require.NoError(t, err)
	require.Equal(t, DefaultCredentialsPath, cfg.CredentialsPath)
	require.Equal(t, BackendFirebase, cfg.Backend)
	require.Equal(t, "users", cfg.ProfileCollection)
	require.Equal(t, DefaultSQLiteDSN, cfg.SQLiteDSN)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.False(t, cfg.RollbackOnProfileFailure)
}

func TestLoad_ArgumentOverridesCredentialsPath(t *testing.T) {
	cfg, err := Load([]string{"/etc/keys/admin.json"}, WithEnvFiles(), WithLookup(envMap(nil)))

	require.NoError(t, err)
	require.Equal(t, "/etc/keys/admin.json", cfg.CredentialsPath)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	cfg, err := Load(nil, WithEnvFiles(), WithLookup(envMap(map[string]string{
		EnvBackend:                  "sqlite",
		EnvProfileCollection:        "profiles",
		EnvSQLiteDSN:                "file::memory:",
		EnvLogLevel:                 "DEBUG",
		EnvLogFile:                  "/tmp/accountctl.log",
		EnvRollbackOnProfileFailure: "true",
		EnvProjectID:                "demo-project",
	})))

	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Backend)
	require.Equal(t, "profiles", cfg.ProfileCollection)
	require.Equal(t, "file::memory:", cfg.SQLiteDSN)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/tmp/accountctl.log", cfg.LogFile)
	require.Equal(t, "demo-project", cfg.ProjectID)
	require.True(t, cfg.RollbackOnProfileFailure)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := Load(nil, WithEnvFiles(), WithLookup(envMap(map[string]string{EnvBackend: "ldap"})))

	require.Error(t, err)
	require.Contains(t, err.Error(), "Backend")
}

func TestLoad_RejectsBadRollbackFlag(t *testing.T) {
	_, err := Load(nil, WithEnvFiles(), WithLookup(envMap(map[string]string{EnvRollbackOnProfileFailure: "maybe"})))

	require.Error(t, err)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "accountctl.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ACCOUNTCTL_TEST_ONLY_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ACCOUNTCTL_TEST_ONLY_VALUE") })

	_, err := Load(nil, WithEnvFiles(envFile), WithLookup(envMap(nil)))

	require.NoError(t, err)
	require.Equal(t, "from-file", os.Getenv("ACCOUNTCTL_TEST_ONLY_VALUE"))
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(nil, WithEnvFiles(filepath.Join(t.TempDir(), "missing.env")), WithLookup(envMap(nil)))
	require.NoError(t, err)
}

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
