package console

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-accountctl/command"
	"github.com/goliatone/go-accountctl/pkg/types"
	"github.com/stretchr/testify/mock"
)

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type memoryIdentity struct {
	accounts  map[string]types.Account
	passwords map[string]string
	seq       int
	createErr error
	listErr   error
}

func (m *memoryIdentity) CreateAccount(_ context.Context, input types.AccountInput) (*types.Account, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.accounts {
		if existing.Email == input.Email {
			return nil, types.ErrEmailExists
		}
	}
	m.seq++
	account := types.Account{ID: fmt.Sprintf("uid-%d", m.seq), Email: input.Email, DisplayName: input.DisplayName}
	m.accounts[account.ID] = account
	m.passwords[account.ID] = input.Password
	return &account, nil
}

func (m *memoryIdentity) ListAccounts(_ context.Context, limit int) ([]types.Account, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]string, 0, len(m.accounts))
	for id := range m.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]types.Account, 0, limit)
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		out = append(out, m.accounts[id])
	}
	return out, nil
}

func (m *memoryIdentity) FindAccountByEmail(_ context.Context, email string) (*types.Account, error) {
	for _, account := range m.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (m *memoryIdentity) DeleteAccount(_ context.Context, id string) error {
	if _, ok := m.accounts[id]; !ok {
		return types.ErrAccountNotFound
	}
	delete(m.accounts, id)
	delete(m.passwords, id)
	return nil
}

type memoryProfiles struct {
	docs      map[string]types.ProfileDocument
	createErr error
}

func (m *memoryProfiles) CreateDocument(_ context.Context, doc types.ProfileDocument) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.docs[doc.AccountID] = doc
	return nil
}

func (m *memoryProfiles) DeleteDocument(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return types.ErrProfileNotFound
	}
	delete(m.docs, id)
	return nil
}

type memoryActivity struct {
	records []types.ActivityRecord
}

func (m *memoryActivity) Log(_ context.Context, record types.ActivityRecord) error {
	m.records = append(m.records, record)
	return nil
}

type mockCreate struct {
	mock.Mock
}

func (m *mockCreate) Execute(ctx context.Context, input command.AccountCreateInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
