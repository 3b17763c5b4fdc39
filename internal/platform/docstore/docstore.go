// Package docstore exposes the small slice of a document database that the
// repositories need: keyed documents grouped into collections, plus queries
// with equality filters, ordering, limits and snapshot cursors. The
// production implementation is backed by Cloud Firestore; tests run against
// the in-memory implementation in the memstore subpackage.
package docstore

import "context"

type Direction int

const (
	Asc Direction = iota
	Desc
)

// ServerTimestamp marks a field whose value should be assigned by the store
// at write time. Adapters translate it to their native sentinel.
var ServerTimestamp sentinel = "server-timestamp"

type sentinel string

type Store interface {
	Collection(name string) Collection
	Close() error
}

// Collection is addressable by document id and doubles as the root of a
// query over its documents.
type Collection interface {
	Query
	Doc(id string) Document
	// Add creates a document with a store-assigned id and returns that id.
	Add(ctx context.Context, data map[string]interface{}) (string, error)
}

type Query interface {
	Where(field, op string, value interface{}) Query
	OrderBy(field string, dir Direction) Query
	Limit(n int) Query
	// StartAfter positions the query just after the given document. The
	// snapshot must originate from the same ordered query.
	StartAfter(after Snapshot) Query
	GetAll(ctx context.Context) ([]Snapshot, error)
	// Count runs an aggregation count over the query, ignoring any limit.
	Count(ctx context.Context) (int64, error)
}

type Document interface {
	ID() string
	// Get returns common.ErrNotFound (wrapped) when the document is absent.
	Get(ctx context.Context) (Snapshot, error)
	Set(ctx context.Context, data map[string]interface{}, merge bool) error
	// Update merges the given fields into an existing document and fails
	// with common.ErrNotFound when the document is absent.
	Update(ctx context.Context, fields map[string]interface{}) error
	Delete(ctx context.Context) error
}

type Snapshot interface {
	ID() string
	Data() map[string]interface{}
	DataTo(v interface{}) error
}
