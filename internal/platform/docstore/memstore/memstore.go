// Package memstore is an in-memory docstore.Store. It mirrors the query
// semantics the repositories rely on from Firestore, notably that documents
// missing an ordered-by field are excluded from results. Tests and local
// development run against it.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"algoclub/internal/common"
	"algoclub/internal/platform/docstore"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

func New() *Store {
	return &Store{collections: make(map[string]map[string]map[string]interface{})}
}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{store: s, name: name}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) docs(collection string) map[string]map[string]interface{} {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]interface{})
		s.collections[collection] = docs
	}
	return docs
}

type collection struct {
	store *Store
	name  string
}

func (c *collection) Doc(id string) docstore.Document {
	return &document{store: c.store, collection: c.name, id: id}
}

func (c *collection) Add(ctx context.Context, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.docs(c.name)[id] = materialize(data)
	return id, nil
}

func (c *collection) Where(field, op string, value interface{}) docstore.Query {
	return c.query().Where(field, op, value)
}

func (c *collection) OrderBy(field string, dir docstore.Direction) docstore.Query {
	return c.query().OrderBy(field, dir)
}

func (c *collection) Limit(n int) docstore.Query {
	return c.query().Limit(n)
}

func (c *collection) StartAfter(after docstore.Snapshot) docstore.Query {
	return c.query().StartAfter(after)
}

func (c *collection) GetAll(ctx context.Context) ([]docstore.Snapshot, error) {
	return c.query().GetAll(ctx)
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	return c.query().Count(ctx)
}

func (c *collection) query() docstore.Query {
	return &query{store: c.store, collection: c.name, limit: -1}
}

type filter struct {
	field string
	op    string
	value interface{}
}

type ordering struct {
	field string
	dir   docstore.Direction
}

type query struct {
	store      *Store
	collection string
	filters    []filter
	orderings  []ordering
	limit      int
	afterID    string
}

func (q *query) clone() *query {
	next := *q
	next.filters = append([]filter(nil), q.filters...)
	next.orderings = append([]ordering(nil), q.orderings...)
	return &next
}

func (q *query) Where(field, op string, value interface{}) docstore.Query {
	next := q.clone()
	next.filters = append(next.filters, filter{field: field, op: op, value: value})
	return next
}

func (q *query) OrderBy(field string, dir docstore.Direction) docstore.Query {
	next := q.clone()
	next.orderings = append(next.orderings, ordering{field: field, dir: dir})
	return next
}

func (q *query) Limit(n int) docstore.Query {
	next := q.clone()
	next.limit = n
	return next
}

func (q *query) StartAfter(after docstore.Snapshot) docstore.Query {
	next := q.clone()
	if after != nil {
		next.afterID = after.ID()
	}
	return next
}

func (q *query) GetAll(ctx context.Context) ([]docstore.Snapshot, error) {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	matched := q.evaluate()

	if q.afterID != "" {
		idx := -1
		for i, snap := range matched {
			if snap.id == q.afterID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			matched = matched[idx+1:]
		} else {
			matched = nil
		}
	}

	if q.limit >= 0 && len(matched) > q.limit {
		matched = matched[:q.limit]
	}

	snaps := make([]docstore.Snapshot, len(matched))
	for i := range matched {
		snaps[i] = matched[i]
	}
	return snaps, nil
}

func (q *query) Count(ctx context.Context) (int64, error) {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()
	return int64(len(q.evaluate())), nil
}

// evaluate applies filters and orderings but neither cursor nor limit.
// Documents missing any ordered-by field are excluded, as Firestore does.
func (q *query) evaluate() []*snapshot {
	var matched []*snapshot

	for id, data := range q.store.collections[q.collection] {
		if !q.matches(data) {
			continue
		}
		excluded := false
		for _, ord := range q.orderings {
			if _, ok := data[ord.field]; !ok {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		matched = append(matched, &snapshot{id: id, data: copyDoc(data)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		for _, ord := range q.orderings {
			cmp := compareValues(matched[i].data[ord.field], matched[j].data[ord.field])
			if cmp == 0 {
				continue
			}
			if ord.dir == docstore.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		// Documents without an explicit ordering come back keyed by id so
		// results stay deterministic across calls.
		return matched[i].id < matched[j].id
	})

	return matched
}

func (q *query) matches(data map[string]interface{}) bool {
	for _, f := range q.filters {
		value, ok := data[f.field]
		if !ok {
			return false
		}
		switch f.op {
		case "==":
			if compareValues(value, f.value) != 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type document struct {
	store      *Store
	collection string
	id         string
}

func (d *document) ID() string {
	return d.id
}

func (d *document) Get(ctx context.Context) (docstore.Snapshot, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	data, ok := d.store.collections[d.collection][d.id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", common.ErrNotFound, d.collection, d.id)
	}
	return &snapshot{id: d.id, data: copyDoc(data)}, nil
}

func (d *document) Set(ctx context.Context, data map[string]interface{}, merge bool) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	docs := d.store.docs(d.collection)
	if existing, ok := docs[d.id]; ok && merge {
		for k, v := range materialize(data) {
			existing[k] = v
		}
		return nil
	}
	docs[d.id] = materialize(data)
	return nil
}

func (d *document) Update(ctx context.Context, fields map[string]interface{}) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	existing, ok := d.store.collections[d.collection][d.id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", common.ErrNotFound, d.collection, d.id)
	}
	for k, v := range materialize(fields) {
		existing[k] = v
	}
	return nil
}

func (d *document) Delete(ctx context.Context) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	delete(d.store.collections[d.collection], d.id)
	return nil
}

type snapshot struct {
	id   string
	data map[string]interface{}
}

func (s *snapshot) ID() string {
	return s.id
}

func (s *snapshot) Data() map[string]interface{} {
	return s.data
}

// DataTo round-trips through JSON, so target structs are decoded by their
// json tags. The wire field names are identical across json and firestore
// tags on the models, which keeps both store implementations in agreement.
func (s *snapshot) DataTo(v interface{}) error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func materialize(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if v == docstore.ServerTimestamp {
			out[k] = time.Now().UTC()
			continue
		}
		out[k] = v
	}
	return out
}

func copyDoc(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func compareValues(a, b interface{}) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case bv:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
