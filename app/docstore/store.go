// Package docstore is the document database the storefront reads and writes.
//
// Documents live in collections addressed by slash separated paths
// ("products", "users/{uid}/cart"). Each backend supports point reads,
// field-equality queries, single-document atomic writes, atomic batches and
// live subscriptions that deliver full collection snapshots.
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("docstore: document not found")
	ErrAlreadyExists = errors.New("docstore: document already exists")
	ErrInvalidPath   = errors.New("docstore: invalid collection path")
	ErrInvalidID     = errors.New("docstore: invalid document id")
	ErrClosed        = errors.New("docstore: store closed")
)

// Store is implemented by MemoryStore, GormStore and MongoStore.
type Store interface {
	Get(ctx context.Context, path Path, id string) (Document, error)
	// Set overwrites the whole document, creating it when absent.
	Set(ctx context.Context, path Path, id string, doc any) error
	// Create fails with ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, path Path, id string, doc any) error
	// Add creates a document under a store generated id.
	Add(ctx context.Context, path Path, doc any) (string, error)
	// Update patches top-level fields of an existing document.
	Update(ctx context.Context, path Path, id string, updates ...Update) error
	// Delete is idempotent.
	Delete(ctx context.Context, path Path, id string) error
	Query(ctx context.Context, path Path, filters ...Filter) ([]Document, error)
	Batch(ctx context.Context, ops ...BatchOp) error
	Subscribe(ctx context.Context, path Path) (*Subscription, error)
	Close(ctx context.Context) error
}

// Document is an immutable snapshot of a stored document.
type Document struct {
	ID         string
	CreateTime time.Time
	UpdateTime time.Time
	data       []byte
}

// DataTo decodes the document body into out.
func (d Document) DataTo(out any) error {
	return json.Unmarshal(d.data, out)
}

// Data returns the document body as a generic field map.
func (d Document) Data() (map[string]any, error) {
	return decodeFields(d.data)
}

// Filter matches documents whose top-level field equals Value.
type Filter struct {
	Field string
	Value any
}

func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Update is one entry of a document patch: either set a field to a value or
// remove the field entirely.
type Update struct {
	Field string
	Value any
	clear bool
}

func Set(field string, value any) Update {
	return Update{Field: field, Value: value}
}

func Clear(field string) Update {
	return Update{Field: field, clear: true}
}

func (u Update) IsClear() bool {
	return u.clear
}

// BatchOp is a single write inside Batch.
type BatchOp struct {
	Path   Path
	ID     string
	Doc    any
	delete bool
}

func SetOp(path Path, id string, doc any) BatchOp {
	return BatchOp{Path: path, ID: id, Doc: doc}
}

func DeleteOp(path Path, id string) BatchOp {
	return BatchOp{Path: path, ID: id, delete: true}
}

func (op BatchOp) IsDelete() bool {
	return op.delete
}

func validateOps(ops []BatchOp) error {
	for _, op := range ops {
		if err := op.Path.Validate(); err != nil {
			return err
		}
		if err := validateID(op.ID); err != nil {
			return err
		}
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	for _, r := range id {
		if r == '/' {
			return ErrInvalidID
		}
	}
	return nil
}
