package docstore

import (
	"context"
	"fmt"
	"os"

	"algoclub/internal/common"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Connect opens a Firestore-backed Store. When FIRESTORE_EMULATOR_HOST is
// set the client talks to the emulator without credentials.
func Connect(ctx context.Context, projectID string) (Store, error) {
	var client *firestore.Client
	var err error

	if os.Getenv("FIRESTORE_EMULATOR_HOST") != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithoutAuthentication())
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("docstore.Connect: %w", err)
	}
	return &fsStore{client: client}, nil
}

type fsStore struct {
	client *firestore.Client
}

func (s *fsStore) Collection(name string) Collection {
	return &fsCollection{ref: s.client.Collection(name)}
}

func (s *fsStore) Close() error {
	return s.client.Close()
}

type fsCollection struct {
	ref *firestore.CollectionRef
}

func (c *fsCollection) Doc(id string) Document {
	return &fsDocument{ref: c.ref.Doc(id)}
}

func (c *fsCollection) Add(ctx context.Context, data map[string]interface{}) (string, error) {
	ref, _, err := c.ref.Add(ctx, translateSentinels(data))
	if err != nil {
		return "", mapStatusError(err)
	}
	return ref.ID, nil
}

func (c *fsCollection) Where(field, op string, value interface{}) Query {
	return &fsQuery{q: c.ref.Where(field, op, value)}
}

func (c *fsCollection) OrderBy(field string, dir Direction) Query {
	return &fsQuery{q: c.ref.OrderBy(field, fsDirection(dir))}
}

func (c *fsCollection) Limit(n int) Query {
	return &fsQuery{q: c.ref.Limit(n)}
}

func (c *fsCollection) StartAfter(after Snapshot) Query {
	return (&fsQuery{q: c.ref.Query}).StartAfter(after)
}

func (c *fsCollection) GetAll(ctx context.Context) ([]Snapshot, error) {
	return (&fsQuery{q: c.ref.Query}).GetAll(ctx)
}

func (c *fsCollection) Count(ctx context.Context) (int64, error) {
	return (&fsQuery{q: c.ref.Query}).Count(ctx)
}

type fsQuery struct {
	q firestore.Query
}

func (q *fsQuery) Where(field, op string, value interface{}) Query {
	return &fsQuery{q: q.q.Where(field, op, value)}
}

func (q *fsQuery) OrderBy(field string, dir Direction) Query {
	return &fsQuery{q: q.q.OrderBy(field, fsDirection(dir))}
}

func (q *fsQuery) Limit(n int) Query {
	return &fsQuery{q: q.q.Limit(n)}
}

func (q *fsQuery) StartAfter(after Snapshot) Query {
	snap, ok := after.(*fsSnapshot)
	if !ok {
		return q
	}
	return &fsQuery{q: q.q.StartAfter(snap.snap)}
}

func (q *fsQuery) GetAll(ctx context.Context) ([]Snapshot, error) {
	docs, err := q.q.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapStatusError(err)
	}
	snaps := make([]Snapshot, 0, len(docs))
	for _, doc := range docs {
		snaps = append(snaps, &fsSnapshot{snap: doc})
	}
	return snaps, nil
}

func (q *fsQuery) Count(ctx context.Context) (int64, error) {
	result, err := q.q.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, mapStatusError(err)
	}
	value, ok := result["count"]
	if !ok {
		return 0, fmt.Errorf("docstore: count aggregation returned no value")
	}
	return value.(*firestorepb.Value).GetIntegerValue(), nil
}

type fsDocument struct {
	ref *firestore.DocumentRef
}

func (d *fsDocument) ID() string {
	return d.ref.ID
}

func (d *fsDocument) Get(ctx context.Context) (Snapshot, error) {
	snap, err := d.ref.Get(ctx)
	if err != nil {
		return nil, mapStatusError(err)
	}
	return &fsSnapshot{snap: snap}, nil
}

func (d *fsDocument) Set(ctx context.Context, data map[string]interface{}, merge bool) error {
	var err error
	if merge {
		_, err = d.ref.Set(ctx, translateSentinels(data), firestore.MergeAll)
	} else {
		_, err = d.ref.Set(ctx, translateSentinels(data))
	}
	return mapStatusError(err)
}

func (d *fsDocument) Update(ctx context.Context, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range translateSentinels(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := d.ref.Update(ctx, updates)
	return mapStatusError(err)
}

func (d *fsDocument) Delete(ctx context.Context) error {
	_, err := d.ref.Delete(ctx)
	return mapStatusError(err)
}

type fsSnapshot struct {
	snap *firestore.DocumentSnapshot
}

func (s *fsSnapshot) ID() string {
	return s.snap.Ref.ID
}

func (s *fsSnapshot) Data() map[string]interface{} {
	return s.snap.Data()
}

func (s *fsSnapshot) DataTo(v interface{}) error {
	return s.snap.DataTo(v)
}

func fsDirection(dir Direction) firestore.Direction {
	if dir == Desc {
		return firestore.Desc
	}
	return firestore.Asc
}

func translateSentinels(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if _, ok := v.(sentinel); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

func mapStatusError(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %v", common.ErrNotFound, err)
	}
	return err
}
