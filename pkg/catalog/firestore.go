package catalog

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// NewFirestoreClient connects through the firebase app so credentials resolve the same way
// as for the other firebase services.
func NewFirestoreClient(ctx context.Context, projectId string, opts ...option.ClientOption) (*firestore.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectId}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	return app.Firestore(ctx)
}

type FirestoreSource struct {
	Client      *firestore.Client
	Collections Collections
}

func NewFirestoreSource(client *firestore.Client) *FirestoreSource {
	return &FirestoreSource{Client: client, Collections: DefaultCollections}
}

func (s *FirestoreSource) rows(ctx context.Context, q firestore.Query) ([]Row, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	rows := make([]Row, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		data := doc.Data()
		if _, ok := data["id"]; !ok {
			data["id"] = doc.Ref.ID
		}
		rows = append(rows, data)
	}
	return rows, nil
}

func (s *FirestoreSource) FetchItems(ctx context.Context, limit int) ([]types.CatalogItem, error) {
	q := s.Client.Collection(s.Collections.Products).
		OrderBy("created_at", firestore.Desc).
		Limit(ClampLimit(limit))
	rows, err := s.rows(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return ParseItems(rows), nil
}

func (s *FirestoreSource) FetchPriceBands(ctx context.Context) ([]types.Band, error) {
	q := s.Client.Collection(s.Collections.PriceBands).OrderBy("sort_order", firestore.Asc)
	rows, err := s.rows(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch price bands: %w", err)
	}
	return ParseBands(rows), nil
}

func (s *FirestoreSource) FetchNames(ctx context.Context, dim types.Dimension) ([]types.NameEntry, error) {
	if dim == types.PriceBand {
		bands, err := s.FetchPriceBands(ctx)
		if err != nil {
			return nil, err
		}
		return BandNames(bands), nil
	}
	name, ok := s.Collections.Names[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, dim)
	}
	rows, err := s.rows(ctx, s.Client.Collection(name).Query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return ParseNames(rows), nil
}

// FirestoreWriter persists saved drafts as product documents.
type FirestoreWriter struct {
	Client      *firestore.Client
	Collections Collections
}

func NewFirestoreWriter(client *firestore.Client) *FirestoreWriter {
	return &FirestoreWriter{Client: client, Collections: DefaultCollections}
}

func (w *FirestoreWriter) SaveProduct(ctx context.Context, p draft.Payload) error {
	row := ItemRow(p.Item())
	row["inventory_qty"] = p.InventoryQty
	_, err := w.Client.Collection(w.Collections.Products).Doc(string(p.Id)).Set(ctx, row)
	if err != nil {
		return fmt.Errorf("save product %s: %w", p.Id, err)
	}
	return nil
}

// SaveBands writes the price band table.
func (w *FirestoreWriter) SaveBands(ctx context.Context, bands []types.Band) error {
	col := w.Client.Collection(w.Collections.PriceBands)
	for _, b := range bands {
		row := Row{
			"id":         string(b.Id),
			"name":       b.Name,
			"sort_order": b.SortOrder,
			"min_amount": nil,
			"max_amount": nil,
		}
		if b.MinAmount != nil {
			row["min_amount"] = *b.MinAmount
		}
		if b.MaxAmount != nil {
			row["max_amount"] = *b.MaxAmount
		}
		if _, err := col.Doc(string(b.Id)).Set(ctx, row); err != nil {
			return fmt.Errorf("save price band %s: %w", b.Id, err)
		}
	}
	return nil
}

// SaveNames writes the name table of dim.
func (w *FirestoreWriter) SaveNames(ctx context.Context, dim types.Dimension, entries []types.NameEntry) error {
	name, ok := w.Collections.Names[dim]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, dim)
	}
	col := w.Client.Collection(name)
	for _, e := range entries {
		if _, err := col.Doc(string(e.Id)).Set(ctx, Row{"id": string(e.Id), "name": e.Name}); err != nil {
			return fmt.Errorf("save %s %s: %w", name, e.Id, err)
		}
	}
	return nil
}
