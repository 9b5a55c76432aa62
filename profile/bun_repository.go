package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-accountctl/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed profile store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileStore and types.ProfileReader using Bun.
type Repository struct {
	profileStore
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default profile store.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("profile: db or repository required")
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

	return &Repository{
		profileStore: repo,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileStore             = (*Repository)(nil)
	_ types.ProfileReader            = (*Repository)(nil)
)

// CreateDocument writes the profile document for the account, replacing any
// document already stored under the same account id.
func (r *Repository) CreateDocument(ctx context.Context, doc types.ProfileDocument) error {
	if strings.TrimSpace(doc.AccountID) == "" {
		return types.ErrAccountIDRequired
	}
	rec := fromDomain(doc)
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.clock.Now()
	}

	existing, err := r.Get(ctx, selectAccountID(doc.AccountID))
	switch {
	case err == nil:
		rec.ID = existing.ID
		_, err = r.Update(ctx, rec)
		return err
	case repository.IsRecordNotFound(err):
		rec.ID = r.idGen.UUID()
		_, err = r.Create(ctx, rec)
		return err
	default:
		return err
	}
}

// DeleteDocument removes the profile document. Missing documents yield
// types.ErrProfileNotFound.
func (r *Repository) DeleteDocument(ctx context.Context, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return types.ErrAccountIDRequired
	}
	existing, err := r.Get(ctx, selectAccountID(accountID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return types.ErrProfileNotFound
		}
		return err
	}
	return r.Delete(ctx, existing)
}

// GetDocument loads the profile document for the account.
func (r *Repository) GetDocument(ctx context.Context, accountID string) (*types.ProfileDocument, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, types.ErrAccountIDRequired
	}
	rec, err := r.Get(ctx, selectAccountID(accountID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}
	return toDomain(rec), nil
}

func selectAccountID(accountID string) repository.SelectCriteria {
	return repository.SelectBy("account_id", "=", accountID)
}

func fromDomain(doc types.ProfileDocument) *Record {
	return &Record{
		AccountID:      doc.AccountID,
		Name:           doc.Name,
		Email:          doc.Email,
		EducationLevel: doc.EducationLevel,
		IndustrialArea: doc.IndustrialArea,
		Results:        cloneResults(doc.Results),
		Images:         cloneImages(doc.Images),
		CreatedAt:      doc.CreatedAt,
	}
}

func toDomain(rec *Record) *types.ProfileDocument {
	if rec == nil {
		return nil
	}
	return &types.ProfileDocument{
		AccountID:      rec.AccountID,
		Name:           rec.Name,
		Email:          rec.Email,
		EducationLevel: rec.EducationLevel,
		IndustrialArea: rec.IndustrialArea,
		Results:        cloneResults(rec.Results),
		Images:         cloneImages(rec.Images),
		CreatedAt:      rec.CreatedAt,
	}
}

func cloneResults(origin []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(origin))
	for _, entry := range origin {
		copied := make(map[string]any, len(entry))
		for k, v := range entry {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out
}

func cloneImages(origin []string) []string {
	out := make([]string, len(origin))
	copy(out, origin)
	return out
}
