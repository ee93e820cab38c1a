package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
)

// getDoc loads and decodes one document. A missing document yields
// (nil, nil), matching the rest of the repository layer.
func getDoc[T any](ctx context.Context, store docstore.Store, path docstore.Path, id string, setID func(*T, string)) (*T, error) {
	doc, err := store.Get(ctx, path, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := doc.DataTo(out); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", path, id, err)
	}
	if setID != nil {
		setID(out, doc.ID)
	}
	return out, nil
}

func decodeDocs[T any](path docstore.Path, docs []docstore.Document, setID func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", path, doc.ID, err)
		}
		if setID != nil {
			setID(&v, doc.ID)
		}
		out = append(out, v)
	}
	return out, nil
}

func queryDocs[T any](ctx context.Context, store docstore.Store, path docstore.Path, setID func(*T, string), filters ...docstore.Filter) ([]T, error) {
	docs, err := store.Query(ctx, path, filters...)
	if err != nil {
		return nil, err
	}
	return decodeDocs(path, docs, setID)
}
