package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchSample fetches up to limit documents from a collection with no
// filter, sort, or projection. It returns fewer documents when the
// collection is smaller and an empty slice when it is empty or missing.
// Documents decode as bson.D so field order survives into inference.
func (s *Store) FetchSample(ctx context.Context, collection string, limit int) ([]bson.D, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, wrapError("sample fetch", err)
	}

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapError("sample decode", err)
	}
	return docs, nil
}

// FindOptions bound a Find call.
type FindOptions struct {
	Projection bson.D
	Sort       bson.D
	Limit      int64
	Skip       int64
}

// Find runs a filtered query. ObjectID coercion is applied to the filter
// before execution so clients can pass hex strings for id fields.
func (s *Store) Find(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.M, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	findOpts := options.Find()
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}
	if opts.Sort != nil {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	cursor, err := coll.Find(ctx, CoerceObjectIDs(filter), findOpts)
	if err != nil {
		return nil, wrapError("find", err)
	}

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapError("find decode", err)
	}
	return docs, nil
}

// Count returns the number of documents matching the filter.
func (s *Store) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	n, err := coll.CountDocuments(ctx, CoerceObjectIDs(filter))
	if err != nil {
		return 0, wrapError("count", err)
	}
	return n, nil
}

// Aggregate runs an aggregation pipeline as given. The pipeline passes
// through untouched apart from decoding; planning belongs to the server.
func (s *Store) Aggregate(ctx context.Context, collection string, pipeline []bson.M) ([]bson.M, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError("aggregate", err)
	}

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapError("aggregate decode", err)
	}
	return docs, nil
}

// InsertMany inserts documents and returns their assigned ids as hex/string
// values.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []bson.M) ([]string, error) {
	if err := s.guardWrite("insert"); err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	payload := make([]any, len(docs))
	for i, d := range docs {
		payload[i] = d
	}

	res, err := coll.InsertMany(ctx, payload)
	if err != nil {
		return nil, wrapError("insert", err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, formatID(id))
	}
	return ids, nil
}

// UpdateMany applies an update document to all documents matching the
// filter. Returns matched and modified counts.
func (s *Store) UpdateMany(ctx context.Context, collection string, filter, update bson.M) (matched, modified int64, err error) {
	if err := s.guardWrite("update"); err != nil {
		return 0, 0, err
	}
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, 0, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := coll.UpdateMany(ctx, CoerceObjectIDs(filter), update)
	if err != nil {
		return 0, 0, wrapError("update", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteMany removes all documents matching the filter.
func (s *Store) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if err := s.guardWrite("delete"); err != nil {
		return 0, err
	}
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := coll.DeleteMany(ctx, CoerceObjectIDs(filter))
	if err != nil {
		return 0, wrapError("delete", err)
	}
	return res.DeletedCount, nil
}
