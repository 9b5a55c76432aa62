package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-accountctl/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/stretchr/testify/require"
)

func TestAccountCreateCommand_CreatesAccountAndProfile(t *testing.T) {
	identity := newFakeIdentity()
	profiles := newFakeProfiles()
	sink := &recordingActivitySink{}
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	var hookEvent types.AccountEvent
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity: identity,
		Profiles: profiles,
		Clock:    fixedClock{now: fixed},
		Activity: sink,
		Hooks: types.Hooks{
			AfterAccountCreated: func(_ context.Context, event types.AccountEvent) {
				hookEvent = event
			},
		},
	})

	result := &AccountCreateResult{}
	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{
			Email:       "  ada@example.com ",
			Password:    "secret123",
			DisplayName: "Ada",
		},
		Result: result,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Account)
	require.Equal(t, "ada@example.com", identity.lastCreate.Email)
	require.Equal(t, "secret123", identity.lastCreate.Password)

	doc, ok := profiles.docs[result.Account.ID]
	require.True(t, ok)
	require.Equal(t, "Ada", doc.Name)
	require.Equal(t, "ada@example.com", doc.Email)
	require.Equal(t, types.DefaultSelectionLabel, doc.EducationLevel)
	require.Equal(t, types.DefaultSelectionLabel, doc.IndustrialArea)
	require.NotNil(t, doc.Results)
	require.Empty(t, doc.Results)
	require.NotNil(t, doc.Images)
	require.Empty(t, doc.Images)
	require.True(t, fixed.Equal(doc.CreatedAt))
	require.Equal(t, &doc, result.Profile)

	require.Len(t, sink.records, 1)
	require.Equal(t, "account.created", sink.records[0].Verb)
	require.Equal(t, result.Account.ID, hookEvent.Account.ID)
}

func TestAccountCreateCommand_KeepsSuppliedLabels(t *testing.T) {
	profiles := newFakeProfiles()
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity: newFakeIdentity(),
		Profiles: profiles,
	})

	result := &AccountCreateResult{}
	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{Email: "b@x.com", Password: "pw123456"},
		Profile: types.ProfileFields{EducationLevel: "Undergraduate", IndustrialArea: "Energy"},
		Result:  result,
	})

	require.NoError(t, err)
	doc := profiles.docs[result.Account.ID]
	require.Equal(t, "Undergraduate", doc.EducationLevel)
	require.Equal(t, "Energy", doc.IndustrialArea)
	require.Equal(t, "", doc.Name)
}

func TestAccountCreateCommand_IdentityFailureSkipsProfile(t *testing.T) {
	identity := newFakeIdentity()
	identity.createErr = types.ErrEmailExists
	profiles := newFakeProfiles()
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity: identity,
		Profiles: profiles,
	})

	result := &AccountCreateResult{}
	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{Email: "dup@x.com", Password: "pw123456"},
		Result:  result,
	})

	require.ErrorIs(t, err, types.ErrEmailExists)
	require.Equal(t, textCodeEmailExists, TextCodeOf(err))
	require.Nil(t, result.Account)
	require.Empty(t, profiles.docs)
	require.Zero(t, profiles.createCalls)
}

func TestAccountCreateCommand_ProfileFailureKeepsAccount(t *testing.T) {
	identity := newFakeIdentity()
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("permission denied")
	sink := &recordingActivitySink{}
	hookCalled := false
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity: identity,
		Profiles: profiles,
		Activity: sink,
		Hooks: types.Hooks{
			AfterAccountCreated: func(context.Context, types.AccountEvent) { hookCalled = true },
		},
	})

	result := &AccountCreateResult{}
	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{Email: "c@x.com", Password: "pw123456"},
		Result:  result,
	})

	require.Error(t, err)
	require.ErrorIs(t, err, profiles.createErr)
	require.Equal(t, textCodeProfileCreateFailed, TextCodeOf(err))
	require.NotNil(t, result.Account)
	require.Nil(t, result.Profile)
	require.False(t, result.RolledBack)
	require.Contains(t, identity.accounts, result.Account.ID)
	require.False(t, hookCalled)
	require.Len(t, sink.records, 1)
	require.Equal(t, "profile.create_failed", sink.records[0].Verb)
}

func TestAccountCreateCommand_ProfileFailureRollsBackWhenEnabled(t *testing.T) {
	identity := newFakeIdentity()
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("unavailable")
	gate := &stubFeatureGate{enabled: true}
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity:    identity,
		Profiles:    profiles,
		FeatureGate: gate,
	})

	result := &AccountCreateResult{}
	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{Email: "d@x.com", Password: "pw123456"},
		Result:  result,
	})

	require.Error(t, err)
	require.True(t, result.RolledBack)
	require.NotContains(t, identity.accounts, result.Account.ID)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	require.Equal(t, true, richErr.Metadata["rolled_back"])
	require.Equal(t, []string{types.FeatureRollbackOnProfileFailure}, gate.keys)
}

func TestAccountCreateCommand_ProfileFailureKeepsAccountWhenGateDisabled(t *testing.T) {
	cases := map[string]*stubFeatureGate{
		"disabled": {enabled: false},
		"error":    {enabled: true, err: errors.New("flag store offline")},
	}
	for name, gate := range cases {
		t.Run(name, func(t *testing.T) {
			identity := newFakeIdentity()
			profiles := newFakeProfiles()
			profiles.createErr = errors.New("unavailable")
			cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
				Identity:    identity,
				Profiles:    profiles,
				FeatureGate: gate,
			})

			result := &AccountCreateResult{}
			err := cmd.Execute(context.Background(), AccountCreateInput{
				Account: types.AccountInput{Email: "e@x.com", Password: "pw123456"},
				Result:  result,
			})

			require.Error(t, err)
			require.ErrorIs(t, err, profiles.createErr)
			require.False(t, result.RolledBack)
			require.Contains(t, identity.accounts, result.Account.ID)
			require.Equal(t, []string{types.FeatureRollbackOnProfileFailure}, gate.keys)
		})
	}
}

func TestAccountCreateCommand_GateNotConsultedOnSuccess(t *testing.T) {
	gate := &stubFeatureGate{enabled: true}
	cmd := NewAccountCreateCommand(AccountCreateCommandConfig{
		Identity:    newFakeIdentity(),
		Profiles:    newFakeProfiles(),
		FeatureGate: gate,
	})

	err := cmd.Execute(context.Background(), AccountCreateInput{
		Account: types.AccountInput{Email: "f@x.com", Password: "pw123456"},
	})

	require.NoError(t, err)
	require.Empty(t, gate.keys)
}

func TestAccountCreateCommand_RequiresDependencies(t *testing.T) {
	err := NewAccountCreateCommand(AccountCreateCommandConfig{Profiles: newFakeProfiles()}).
		Execute(context.Background(), AccountCreateInput{})
	require.ErrorIs(t, err, types.ErrMissingIdentityService)

	err = NewAccountCreateCommand(AccountCreateCommandConfig{Identity: newFakeIdentity()}).
		Execute(context.Background(), AccountCreateInput{})
	require.ErrorIs(t, err, types.ErrMissingProfileStore)
}

func TestAccountDeleteCommand_DeletesAccountAndProfile(t *testing.T) {
	identity := newFakeIdentity()
	identity.accounts["uid-1"] = types.Account{ID: "uid-1", Email: "a@x.com"}
	profiles := newFakeProfiles()
	profiles.docs["uid-1"] = types.ProfileDocument{AccountID: "uid-1"}
	sink := &recordingActivitySink{}

	order := make([]string, 0, 2)
	sink.onLog = func(types.ActivityRecord) { order = append(order, "sink") }
	cmd := NewAccountDeleteCommand(AccountDeleteCommandConfig{
		Identity: identity,
		Profiles: profiles,
		Activity: sink,
		Hooks: types.Hooks{
			AfterAccountDeleted: func(context.Context, types.AccountEvent) { order = append(order, "hook") },
		},
	})

	result := &AccountDeleteResult{}
	err := cmd.Execute(context.Background(), AccountDeleteInput{
		AccountID: "uid-1",
		Email:     "a@x.com",
		Confirmed: true,
		Result:    result,
	})

	require.NoError(t, err)
	require.True(t, result.AccountDeleted)
	require.True(t, result.ProfileDeleted)
	require.False(t, result.ProfileMissing)
	require.NotContains(t, identity.accounts, "uid-1")
	require.NotContains(t, profiles.docs, "uid-1")
	require.Equal(t, []string{"sink", "hook"}, order)
	require.Equal(t, "account.deleted", sink.records[0].Verb)
}

func TestAccountDeleteCommand_MissingProfileIsNotFatal(t *testing.T) {
	identity := newFakeIdentity()
	identity.accounts["uid-2"] = types.Account{ID: "uid-2", Email: "b@x.com"}
	cmd := NewAccountDeleteCommand(AccountDeleteCommandConfig{
		Identity: identity,
		Profiles: newFakeProfiles(),
	})

	result := &AccountDeleteResult{}
	err := cmd.Execute(context.Background(), AccountDeleteInput{
		AccountID: "uid-2",
		Confirmed: true,
		Result:    result,
	})

	require.NoError(t, err)
	require.True(t, result.AccountDeleted)
	require.False(t, result.ProfileDeleted)
	require.True(t, result.ProfileMissing)
	require.ErrorIs(t, result.ProfileErr, types.ErrProfileNotFound)
}

func TestAccountDeleteCommand_ProfileStoreFailureIsNotFatal(t *testing.T) {
	identity := newFakeIdentity()
	identity.accounts["uid-3"] = types.Account{ID: "uid-3"}
	profiles := newFakeProfiles()
	profiles.deleteErr = errors.New("deadline exceeded")
	cmd := NewAccountDeleteCommand(AccountDeleteCommandConfig{
		Identity: identity,
		Profiles: profiles,
	})

	result := &AccountDeleteResult{}
	err := cmd.Execute(context.Background(), AccountDeleteInput{AccountID: "uid-3", Confirmed: true, Result: result})

	require.NoError(t, err)
	require.False(t, result.ProfileDeleted)
	require.False(t, result.ProfileMissing)
	require.ErrorIs(t, result.ProfileErr, profiles.deleteErr)
	require.NotContains(t, identity.accounts, "uid-3")
}

func TestAccountDeleteCommand_RequiresConfirmation(t *testing.T) {
	identity := newFakeIdentity()
	identity.accounts["uid-4"] = types.Account{ID: "uid-4"}
	cmd := NewAccountDeleteCommand(AccountDeleteCommandConfig{
		Identity: identity,
		Profiles: newFakeProfiles(),
	})

	err := cmd.Execute(context.Background(), AccountDeleteInput{AccountID: "uid-4"})

	require.ErrorIs(t, err, ErrDeleteNotConfirmed)
	require.Contains(t, identity.accounts, "uid-4")
	require.Zero(t, identity.deleteCalls)
}

func TestAccountDeleteCommand_UnknownAccount(t *testing.T) {
	profiles := newFakeProfiles()
	cmd := NewAccountDeleteCommand(AccountDeleteCommandConfig{
		Identity: newFakeIdentity(),
		Profiles: profiles,
	})

	err := cmd.Execute(context.Background(), AccountDeleteInput{AccountID: "ghost", Confirmed: true})

	require.ErrorIs(t, err, ErrAccountNotFound)
	require.Equal(t, textCodeAccountNotFound, TextCodeOf(err))
	require.Zero(t, profiles.deleteCalls)
}

type fakeIdentity struct {
	accounts    map[string]types.Account
	createErr   error
	lastCreate  types.AccountInput
	seq         int
	deleteCalls int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: map[string]types.Account{}}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, input types.AccountInput) (*types.Account, error) {
	f.lastCreate = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	account := types.Account{
		ID:          "uid-" + string(rune('a'+f.seq)),
		Email:       input.Email,
		DisplayName: input.DisplayName,
	}
	f.accounts[account.ID] = account
	return &account, nil
}

func (f *fakeIdentity) ListAccounts(_ context.Context, limit int) ([]types.Account, error) {
	out := make([]types.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		if len(out) == limit {
			break
		}
		out = append(out, account)
	}
	return out, nil
}

func (f *fakeIdentity) FindAccountByEmail(_ context.Context, email string) (*types.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, id string) error {
	f.deleteCalls++
	if _, ok := f.accounts[id]; !ok {
		return types.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

type fakeProfiles struct {
	docs        map[string]types.ProfileDocument
	createErr   error
	deleteErr   error
	createCalls int
	deleteCalls int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{docs: map[string]types.ProfileDocument{}}
}

func (f *fakeProfiles) CreateDocument(_ context.Context, doc types.ProfileDocument) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.docs[doc.AccountID] = doc
	return nil
}

func (f *fakeProfiles) DeleteDocument(_ context.Context, accountID string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.docs[accountID]; !ok {
		return types.ErrProfileNotFound
	}
	delete(f.docs, accountID)
	return nil
}

type recordingActivitySink struct {
	records []types.ActivityRecord
	onLog   func(types.ActivityRecord)
}

func (r *recordingActivitySink) Log(_ context.Context, record types.ActivityRecord) error {
	r.records = append(r.records, record)
	if r.onLog != nil {
		r.onLog(record)
	}
	return nil
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func TestActivityLogCommand_LogsRecord(t *testing.T) {
	sink := &recordingActivitySink{}
	fixed := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	cmd := NewActivityLogCommand(ActivityLogConfig{Sink: sink, Clock: fixedClock{now: fixed}})

	err := cmd.Execute(context.Background(), ActivityLogInput{
		Record: types.ActivityRecord{Verb: "console.session.started", Channel: "console"},
	})

	require.NoError(t, err)
	require.Len(t, sink.records, 1)
	require.Equal(t, fixed, sink.records[0].OccurredAt)
}

func TestActivityLogCommand_RequiresVerbAndSink(t *testing.T) {
	cmd := NewActivityLogCommand(ActivityLogConfig{Sink: &recordingActivitySink{}})
	require.ErrorIs(t, cmd.Execute(context.Background(), ActivityLogInput{}), ErrActivityVerbRequired)

	cmd = NewActivityLogCommand(ActivityLogConfig{})
	require.ErrorIs(t, cmd.Execute(context.Background(), ActivityLogInput{
		Record: types.ActivityRecord{Verb: "x"},
	}), types.ErrMissingActivitySink)
}

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}
