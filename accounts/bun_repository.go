package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-accountctl/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength mirrors the hosted identity provider's minimum.
const minPasswordLength = 6

var (
	// ErrEmailRequired indicates the account email was blank.
	ErrEmailRequired = errors.New("accounts: email required")
	// ErrPasswordTooShort indicates the password is shorter than six characters.
	ErrPasswordTooShort = errors.New("accounts: password must be at least 6 characters")
	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
)

// RepositoryConfig wires the Bun-backed identity service.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
	// HashCost overrides bcrypt.DefaultCost.
	HashCost int
}

type accountStore interface {
	repository.Repository[*Record]
}

// Repository implements types.IdentityService on a local database so the
// console can run without a hosted identity provider.
type Repository struct {
	accountStore
	clock    types.Clock
	idGen    types.IDGenerator
	hashCost int
}

// NewRepository constructs the default account repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("accounts: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	hashCost := cfg.HashCost
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Repository{
		accountStore: repo,
		clock:        clock,
		idGen:        idGen,
		hashCost:     hashCost,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.IdentityService          = (*Repository)(nil)
)

// CreateAccount stores a new account with a bcrypt hashed password. Emails are
// compared case-insensitively.
func (r *Repository) CreateAccount(ctx context.Context, input types.AccountInput) (*types.Account, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	_, err := r.Get(ctx, selectEmail(email))
	switch {
	case err == nil:
		return nil, types.ErrEmailExists
	case !repository.IsRecordNotFound(err):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), r.hashCost)
	if err != nil {
		return nil, err
	}
	now := r.clock.Now()
	rec := &Record{
		ID:           r.idGen.UUID(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := r.Create(ctx, rec)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrEmailExists
		}
		return nil, err
	}
	return toDomain(created), nil
}

// ListAccounts returns up to limit accounts, most recently created first.
func (r *Repository) ListAccounts(ctx context.Context, limit int) ([]types.Account, error) {
	if limit <= 0 {
		limit = types.MaxAccountListLimit
	}
	records, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("created_at DESC, email DESC").Limit(limit)
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Account, 0, len(records))
	for _, rec := range records {
		out = append(out, *toDomain(rec))
	}
	return out, nil
}

// FindAccountByEmail resolves an email to its account.
func (r *Repository) FindAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	rec, err := r.Get(ctx, selectEmail(normalizeEmail(email)))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrAccountNotFound
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// DeleteAccount removes the account identified by id.
func (r *Repository) DeleteAccount(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return types.ErrAccountNotFound
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", parsed.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return types.ErrAccountNotFound
		}
		return err
	}
	return r.Delete(ctx, rec)
}

// VerifyPassword checks the supplied password against the stored hash.
func (r *Repository) VerifyPassword(ctx context.Context, email, password string) (*types.Account, error) {
	rec, err := r.Get(ctx, selectEmail(normalizeEmail(email)))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return toDomain(rec), nil
}

func selectEmail(email string) repository.SelectCriteria {
	return repository.SelectBy("email", "=", email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(types.NormalizeEmail(email))
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func toDomain(rec *Record) *types.Account {
	if rec == nil {
		return nil
	}
	createdAt := rec.CreatedAt
	return &types.Account{
		ID:          rec.ID.String(),
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		CreatedAt:   &createdAt,
	}
}
