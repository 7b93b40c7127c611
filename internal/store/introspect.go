package store

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionStats summarizes a collection's size and index footprint.
type CollectionStats struct {
	Name           string `json:"name"`
	DocumentCount  int64  `json:"document_count"`
	SizeBytes      int64  `json:"size_bytes"`
	StorageBytes   int64  `json:"storage_bytes"`
	AvgObjectBytes int64  `json:"avg_object_bytes"`
	IndexCount     int64  `json:"index_count"`
	IndexBytes     int64  `json:"index_bytes"`
}

// IndexInfo describes one index on a collection.
type IndexInfo struct {
	Name   string         `json:"name"`
	Keys   map[string]any `json:"keys"`
	Unique bool           `json:"unique"`
	Sparse bool           `json:"sparse"`
}

// ListCollections returns the database's collection names, sorted.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	names, err := client.Database(s.database).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, wrapError("list collections", err)
	}
	sort.Strings(names)
	return names, nil
}

// Stats runs collStats for a collection.
func (s *Store) Stats(ctx context.Context, collection string) (*CollectionStats, error) {
	if _, err := s.collection(ctx, collection); err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	s.mu.Lock()
	client := s.client
	s.mu.Unlock()

	var raw struct {
		Count          int64 `bson:"count"`
		Size           int64 `bson:"size"`
		StorageSize    int64 `bson:"storageSize"`
		AvgObjSize     int64 `bson:"avgObjSize"`
		NIndexes       int64 `bson:"nindexes"`
		TotalIndexSize int64 `bson:"totalIndexSize"`
	}
	cmd := bson.D{{Key: "collStats", Value: collection}}
	if err := client.Database(s.database).RunCommand(ctx, cmd).Decode(&raw); err != nil {
		return nil, wrapError(fmt.Sprintf("collStats %s", collection), err)
	}

	return &CollectionStats{
		Name:           collection,
		DocumentCount:  raw.Count,
		SizeBytes:      raw.Size,
		StorageBytes:   raw.StorageSize,
		AvgObjectBytes: raw.AvgObjSize,
		IndexCount:     raw.NIndexes,
		IndexBytes:     raw.TotalIndexSize,
	}, nil
}

// ListIndexes returns the indexes defined on a collection.
func (s *Store) ListIndexes(ctx context.Context, collection string) ([]IndexInfo, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, wrapError("list indexes", err)
	}

	var raw []struct {
		Name   string `bson:"name"`
		Key    bson.D `bson:"key"`
		Unique bool   `bson:"unique"`
		Sparse bool   `bson:"sparse"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, wrapError("list indexes decode", err)
	}

	indexes := make([]IndexInfo, 0, len(raw))
	for _, idx := range raw {
		keys := make(map[string]any, len(idx.Key))
		for _, elem := range idx.Key {
			keys[elem.Key] = normalizeIndexDirection(elem.Value)
		}
		indexes = append(indexes, IndexInfo{
			Name:   idx.Name,
			Keys:   keys,
			Unique: idx.Unique,
			Sparse: idx.Sparse,
		})
	}
	return indexes, nil
}

// normalizeIndexDirection keeps index key values JSON-friendly: numeric
// directions stay numbers, text/hashed index kinds stay strings.
func normalizeIndexDirection(v any) any {
	switch val := v.(type) {
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return v
	}
}

// formatID renders an inserted id for tool output.
func formatID(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", id)
}
