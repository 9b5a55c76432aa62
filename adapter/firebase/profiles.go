package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/goliatone/go-accountctl/pkg/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type documentStore interface {
	Set(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (map[string]any, error)
}

type collectionStore struct {
	coll *firestore.CollectionRef
}

func (c collectionStore) Set(ctx context.Context, id string, data map[string]any) error {
	_, err := c.coll.Doc(id).Set(ctx, data)
	return err
}

// Delete fails with NotFound when the document is absent.
func (c collectionStore) Delete(ctx context.Context, id string) error {
	_, err := c.coll.Doc(id).Delete(ctx, firestore.Exists)
	return err
}

func (c collectionStore) Get(ctx context.Context, id string) (map[string]any, error) {
	snap, err := c.coll.Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

// Profiles stores Profile Documents in a Firestore collection keyed by UID.
type Profiles struct {
	docs documentStore
}

// NewProfiles binds the store to collection, defaulting to
// types.DefaultProfileCollection.
func NewProfiles(client *firestore.Client, collection string) *Profiles {
	if collection == "" {
		collection = types.DefaultProfileCollection
	}
	return &Profiles{docs: collectionStore{coll: client.Collection(collection)}}
}

var (
	_ types.ProfileStore  = (*Profiles)(nil)
	_ types.ProfileReader = (*Profiles)(nil)
)

// CreateDocument writes the document. createdAt is assigned by the server.
func (p *Profiles) CreateDocument(ctx context.Context, doc types.ProfileDocument) error {
	if doc.AccountID == "" {
		return types.ErrAccountIDRequired
	}
	if err := p.docs.Set(ctx, doc.AccountID, documentFields(doc)); err != nil {
		return fmt.Errorf("firebase: write profile %s: %w", doc.AccountID, err)
	}
	return nil
}

// DeleteDocument removes the document, returning types.ErrProfileNotFound
// when none exists.
func (p *Profiles) DeleteDocument(ctx context.Context, accountID string) error {
	if accountID == "" {
		return types.ErrAccountIDRequired
	}
	if err := p.docs.Delete(ctx, accountID); err != nil {
		return translateStoreError(accountID, err)
	}
	return nil
}

// GetDocument loads the document back.
func (p *Profiles) GetDocument(ctx context.Context, accountID string) (*types.ProfileDocument, error) {
	data, err := p.docs.Get(ctx, accountID)
	if err != nil {
		return nil, translateStoreError(accountID, err)
	}
	doc := documentFromFields(accountID, data)
	return &doc, nil
}

func translateStoreError(accountID string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", types.ErrProfileNotFound, accountID)
	}
	return fmt.Errorf("firebase: profile %s: %w", accountID, err)
}

func documentFields(doc types.ProfileDocument) map[string]any {
	results := doc.Results
	if results == nil {
		results = []map[string]any{}
	}
	images := doc.Images
	if images == nil {
		images = []string{}
	}
	return map[string]any{
		"name":           doc.Name,
		"email":          doc.Email,
		"educationLevel": doc.EducationLevel,
		"industrialArea": doc.IndustrialArea,
		"results":        results,
		"images":         images,
		"createdAt":      firestore.ServerTimestamp,
	}
}

func documentFromFields(accountID string, data map[string]any) types.ProfileDocument {
	doc := types.ProfileDocument{
		AccountID:      accountID,
		Name:           stringField(data, "name"),
		Email:          stringField(data, "email"),
		EducationLevel: stringField(data, "educationLevel"),
		IndustrialArea: stringField(data, "industrialArea"),
		Results:        []map[string]any{},
		Images:         []string{},
	}
	if created, ok := data["createdAt"].(time.Time); ok {
		doc.CreatedAt = created.UTC()
	}
	if items, ok := data["results"].([]any); ok {
		for _, item := range items {
			if entry, ok := item.(map[string]any); ok {
				doc.Results = append(doc.Results, entry)
			}
		}
	}
	if items, ok := data["images"].([]any); ok {
		for _, item := range items {
			if url, ok := item.(string); ok {
				doc.Images = append(doc.Images, url)
			}
		}
	}
	return doc
}

func stringField(data map[string]any, key string) string {
	value, _ := data[key].(string)
	return value
}
