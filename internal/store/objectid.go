package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoerceObjectIDs returns a copy of filter in which 24-hex string values
// under id-like keys are rewritten to ObjectIDs, recursing through nested
// documents, arrays, and operator values ($in and friends). The heuristic is
// deliberately narrow: the key must be "_id" or end in "_id" or "Id", and
// the value must parse as an ObjectID. It is applied to caller-supplied
// filters only, never to sampled documents, so inference always describes
// data as stored.
//
// A nil filter normalizes to an empty match-all document; the driver rejects
// nil filters, and every query op routes through here.
func CoerceObjectIDs(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	out := make(bson.M, len(filter))
	for key, value := range filter {
		out[key] = coerceValue(key, value)
	}
	return out
}

func coerceValue(key string, value any) any {
	switch val := value.(type) {
	case string:
		if isIDKey(key) {
			if oid, err := primitive.ObjectIDFromHex(val); err == nil {
				return oid
			}
		}
		return val
	case bson.M:
		inner := make(bson.M, len(val))
		for k, v := range val {
			// Operator keys ($eq, $in, ...) keep the parent field's
			// id-ness; plain keys start their own.
			childKey := k
			if strings.HasPrefix(k, "$") {
				childKey = key
			}
			inner[k] = coerceValue(childKey, v)
		}
		return inner
	case map[string]any:
		return coerceValue(key, bson.M(val))
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = coerceValue(key, item)
		}
		return items
	case bson.A:
		items := make(bson.A, len(val))
		for i, item := range val {
			items[i] = coerceValue(key, item)
		}
		return items
	default:
		return val
	}
}

func isIDKey(key string) bool {
	return key == "_id" || strings.HasSuffix(key, "_id") || strings.HasSuffix(key, "Id")
}
