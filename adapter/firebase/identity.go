package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/goliatone/go-accountctl/pkg/types"
	"google.golang.org/api/iterator"
)

type authBackend interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

type userIterator interface {
	Next() (*auth.ExportedUserRecord, error)
}

// Identity implements types.IdentityService on Firebase Authentication.
type Identity struct {
	backend     authBackend
	users       func(ctx context.Context) userIterator
	notFound    func(error) bool
	emailExists func(error) bool
}

// NewIdentity wraps an Admin SDK auth client.
func NewIdentity(client *auth.Client) *Identity {
	return newIdentity(client, func(ctx context.Context) userIterator {
		return client.Users(ctx, "")
	})
}

func newIdentity(backend authBackend, users func(ctx context.Context) userIterator) *Identity {
	return &Identity{
		backend:     backend,
		users:       users,
		notFound:    auth.IsUserNotFound,
		emailExists: auth.IsEmailAlreadyExists,
	}
}

var _ types.IdentityService = (*Identity)(nil)

// CreateAccount registers a new user. A blank display name is left unset.
func (i *Identity) CreateAccount(ctx context.Context, input types.AccountInput) (*types.Account, error) {
	params := (&auth.UserToCreate{}).
		Email(input.Email).
		Password(input.Password)
	if input.DisplayName != "" {
		params = params.DisplayName(input.DisplayName)
	}
	record, err := i.backend.CreateUser(ctx, params)
	if err != nil {
		return nil, i.translate(err)
	}
	account := accountFromRecord(record)
	return &account, nil
}

// ListAccounts returns at most limit accounts in backend order.
func (i *Identity) ListAccounts(ctx context.Context, limit int) ([]types.Account, error) {
	if limit <= 0 {
		return []types.Account{}, nil
	}
	iter := i.users(ctx)
	accounts := make([]types.Account, 0, limit)
	for len(accounts) < limit {
		record, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firebase: list users: %w", err)
		}
		if record == nil || record.UserRecord == nil {
			continue
		}
		accounts = append(accounts, accountFromRecord(record.UserRecord))
	}
	return accounts, nil
}

// FindAccountByEmail resolves an account by its email address.
func (i *Identity) FindAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	record, err := i.backend.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, i.translate(err)
	}
	account := accountFromRecord(record)
	return &account, nil
}

// DeleteAccount removes the account with the given UID.
func (i *Identity) DeleteAccount(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrAccountIDRequired
	}
	if err := i.backend.DeleteUser(ctx, id); err != nil {
		return i.translate(err)
	}
	return nil
}

func (i *Identity) translate(err error) error {
	switch {
	case i.notFound != nil && i.notFound(err):
		return fmt.Errorf("%w: %s", types.ErrAccountNotFound, err.Error())
	case i.emailExists != nil && i.emailExists(err):
		return fmt.Errorf("%w: %s", types.ErrEmailExists, err.Error())
	default:
		return err
	}
}

func accountFromRecord(record *auth.UserRecord) types.Account {
	if record == nil || record.UserInfo == nil {
		return types.Account{}
	}
	account := types.Account{
		ID:          record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}
	if record.UserMetadata != nil && record.UserMetadata.CreationTimestamp > 0 {
		created := time.UnixMilli(record.UserMetadata.CreationTimestamp).UTC()
		account.CreatedAt = &created
	}
	return account
}
