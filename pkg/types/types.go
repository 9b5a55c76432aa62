package types

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSelectionLabel fills optional profile labels the operator left blank.
	DefaultSelectionLabel = "not selected"
	// MaxAccountListLimit caps account enumeration regardless of what callers ask for.
	MaxAccountListLimit = 10
	// DefaultProfileCollection names the document collection holding profiles.
	DefaultProfileCollection = "users"
	// FeatureRollbackOnProfileFailure deletes a new account whose profile
	// document could not be written.
	FeatureRollbackOnProfileFailure = "accounts.rollback_on_profile_failure"
)

// Account is the storage-agnostic representation of an Identity Service
// account. Passwords are write-only and never surface here.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   *time.Time
}

// AccountInput captures the payload sent to the Identity Service on creation.
type AccountInput struct {
	Email       string
	Password    string
	DisplayName string
}

// ProfileDocument mirrors the per-account metadata kept in the Profile Store.
type ProfileDocument struct {
	AccountID      string
	Name           string
	Email          string
	EducationLevel string
	IndustrialArea string
	Results        []map[string]any
	Images         []string
	CreatedAt      time.Time
}

// ProfileFields collects the operator supplied profile labels.
type ProfileFields struct {
	EducationLevel string
	IndustrialArea string
}

// NewProfileDocument builds the document stored alongside a freshly created
// account. Blank labels fall back to DefaultSelectionLabel and the result and
// image sequences start empty (never nil) so stores persist empty arrays.
func NewProfileDocument(account Account, fields ProfileFields, createdAt time.Time) ProfileDocument {
	return ProfileDocument{
		AccountID:      account.ID,
		Name:           account.DisplayName,
		Email:          account.Email,
		EducationLevel: labelOrDefault(fields.EducationLevel),
		IndustrialArea: labelOrDefault(fields.IndustrialArea),
		Results:        []map[string]any{},
		Images:         []string{},
		CreatedAt:      createdAt,
	}
}

func labelOrDefault(label string) string {
	if label == "" {
		return DefaultSelectionLabel
	}
	return label
}

// IdentityService abstracts whichever upstream account system the console
// manages. Implementations must translate backend specific failures into the
// sentinels below where one applies.
type IdentityService interface {
	CreateAccount(ctx context.Context, input AccountInput) (*Account, error)
	ListAccounts(ctx context.Context, limit int) ([]Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// ProfileStore persists the Profile Document keyed by account identifier.
type ProfileStore interface {
	CreateDocument(ctx context.Context, doc ProfileDocument) error
	DeleteDocument(ctx context.Context, accountID string) error
}

// ProfileReader is implemented by stores that can load a document back. The
// console never needs it, tests and audits do.
type ProfileReader interface {
	GetDocument(ctx context.Context, accountID string) (*ProfileDocument, error)
}

// AccountEvent is emitted after account workflows complete.
type AccountEvent struct {
	Account    Account
	Action     string
	OccurredAt time.Time
	Metadata   map[string]any
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterAccountCreated func(context.Context, AccountEvent)
	AfterAccountDeleted func(context.Context, AccountEvent)
}

// ActivityRecord describes sink inputs and is shared across sink and query layers.
type ActivityRecord struct {
	ID         uuid.UUID
	AccountID  string
	Verb       string
	ObjectType string
	ObjectID   string
	Channel    string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal DI contract for emitting activity.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityRepository exposes read-side access to activity logs.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
}

// ActivityFilter narrows activity feed queries.
type ActivityFilter struct {
	AccountID  string
	Verbs      []string
	Pagination Pagination
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// Pagination supports list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by commands, queries and the console.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

// NormalizeEmail trims surrounding whitespace. Case is preserved because the
// Identity Service owns address comparison rules.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

var (
	// ErrAccountNotFound indicates the Identity Service has no matching account.
	ErrAccountNotFound = errors.New("accountctl: account not found")
	// ErrEmailExists indicates another account already uses the email address.
	ErrEmailExists = errors.New("accountctl: email already exists")
	// ErrProfileNotFound indicates the Profile Store has no document for the account.
	ErrProfileNotFound = errors.New("accountctl: profile document not found")
	// ErrAccountIDRequired indicates an account identifier was omitted.
	ErrAccountIDRequired = errors.New("accountctl: account id required")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("accountctl: service not ready")
	// ErrMissingIdentityService occurs when no identity service was supplied.
	ErrMissingIdentityService = errors.New("accountctl: missing identity service")
	// ErrMissingProfileStore occurs when no profile store was supplied.
	ErrMissingProfileStore = errors.New("accountctl: missing profile store")
	// ErrMissingProfileReader occurs when the profile store cannot load documents.
	ErrMissingProfileReader = errors.New("accountctl: profile store cannot read documents")
	// ErrMissingActivitySink occurs when a wrapping sink has nothing to forward to.
	ErrMissingActivitySink = errors.New("accountctl: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("accountctl: missing activity repository")
)
