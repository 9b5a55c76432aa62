// Package config resolves the console runtime settings from the process
// arguments and ACCOUNTCTL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-accountctl/pkg/types"
)

const (
	// DefaultCredentialsPath is used when no argument names a key file.
	DefaultCredentialsPath = "./serviceAccountKey.json"
	// DefaultLogLevel keeps diagnostics out of the interactive session unless
	// something fails outside a workflow.
	DefaultLogLevel = "error"
	// DefaultSQLiteDSN backs the offline backend.
	DefaultSQLiteDSN = "file:accountctl.db?cache=shared&_fk=1"

	BackendFirebase = "firebase"
	BackendSQLite   = "sqlite"

	// SQLiteDriver is the database/sql driver name registered by go-sqlite3.
	SQLiteDriver = "sqlite3"
	// PingTimeout bounds the connectivity check go-persistence-bun runs on open.
	PingTimeout = 5 * time.Second
	// OtelIdentifier names the persistence client in traces.
	OtelIdentifier = "accountctl"
)

// Environment variable names.
const (
	EnvBackend                  = "ACCOUNTCTL_BACKEND"
	EnvProjectID                = "ACCOUNTCTL_PROJECT_ID"
	EnvProfileCollection        = "ACCOUNTCTL_PROFILE_COLLECTION"
	EnvSQLiteDSN                = "ACCOUNTCTL_SQLITE_DSN"
	EnvLogLevel                 = "ACCOUNTCTL_LOG_LEVEL"
	EnvLogFile                  = "ACCOUNTCTL_LOG_FILE"
	EnvRollbackOnProfileFailure = "ACCOUNTCTL_ROLLBACK_ON_PROFILE_FAILURE"
)

// Config holds every runtime setting.
type Config struct {
	CredentialsPath          string `validate:"required_if=Backend firebase"`
	Backend                  string `validate:"required,oneof=firebase sqlite"`
	ProjectID                string
	ProfileCollection        string `validate:"required"`
	SQLiteDSN                string `validate:"required_if=Backend sqlite"`
	LogLevel                 string `validate:"required,oneof=debug info error"`
	LogFile                  string
	RollbackOnProfileFailure bool
}

// Option customizes Load.
type Option func(*loader)

type loader struct {
	envFiles []string
	lookup   func(string) (string, bool)
}

// WithEnvFiles replaces the default ".env" file list.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.envFiles = files
	}
}

// WithLookup replaces os.LookupEnv, mostly for tests.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// Load builds the configuration. args are the process arguments without the
// program name; the first one, when present, is the credentials path.
func Load(args []string, opts ...Option) (*Config, error) {
	l := loader{
		envFiles: []string{".env"},
		lookup:   os.LookupEnv,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	for _, file := range l.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	cfg := &Config{
		CredentialsPath:   DefaultCredentialsPath,
		Backend:           l.get(EnvBackend, BackendFirebase),
		ProjectID:         l.get(EnvProjectID, ""),
		ProfileCollection: l.get(EnvProfileCollection, types.DefaultProfileCollection),
		SQLiteDSN:         l.get(EnvSQLiteDSN, DefaultSQLiteDSN),
		LogLevel:          strings.ToLower(l.get(EnvLogLevel, DefaultLogLevel)),
		LogFile:           l.get(EnvLogFile, ""),
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		cfg.CredentialsPath = args[0]
	}
	if raw := l.get(EnvRollbackOnProfileFailure, ""); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvRollbackOnProfileFailure, err)
		}
		cfg.RollbackOnProfileFailure = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fieldErr := validationErrs[0]
			return fmt.Errorf("validate config: %s failed on %q", fieldErr.Field(), fieldErr.Tag())
		}
		return fmt.Errorf("validate config: %v", err)
	}
	return nil
}

// GetDebug implements persistence.Config. Query logging stays off because it
// writes to stdout, which belongs to the console session.
func (c Config) GetDebug() bool { return false }

// GetDriver implements persistence.Config.
func (c Config) GetDriver() string { return SQLiteDriver }

// GetServer implements persistence.Config.
func (c Config) GetServer() string { return c.SQLiteDSN }

// GetPingTimeout implements persistence.Config.
func (c Config) GetPingTimeout() time.Duration { return PingTimeout }

// GetOtelIdentifier implements persistence.Config.
func (c Config) GetOtelIdentifier() string { return OtelIdentifier }

func (l loader) get(key, fallback string) string {
	if value, ok := l.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
