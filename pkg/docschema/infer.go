// Package docschema infers field-level structural summaries from sampled
// MongoDB documents. Given a bounded, unfiltered sample of a collection it
// reports every observed field path with its type tags, example values, and
// presence frequency, so a caller can form correct queries against a
// schemaless collection without guessing field names or types.
package docschema

import (
	"math"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type tags form a closed, coarse classification of observed values.
// Classification precedence is array, null, date, objectId, object, then the
// primitive kinds, with unknown as the fallback.
const (
	TagArray    = "array"
	TagNull     = "null"
	TagDate     = "date"
	TagObjectID = "objectId"
	TagObject   = "object"
	TagString   = "string"
	TagNumber   = "number"
	TagBoolean  = "boolean"
	TagUnknown  = "unknown"
)

// maxExamples caps captured example values per field path.
const maxExamples = 3

// fieldRecord accumulates observations for a single field path during one
// inference run. The seen bitmap holds document ordinals, so revisiting a
// path within the same document cannot double count presence.
type fieldRecord struct {
	types    map[string]bool
	examples []any
	seen     *roaring.Bitmap
}

func newFieldRecord() *fieldRecord {
	return &fieldRecord{
		types:    make(map[string]bool),
		examples: make([]any, 0, maxExamples),
		seen:     roaring.New(),
	}
}

// Infer folds over samples and produces a structural report for the named
// collection. It is a pure function of its input: all accumulator state is
// local to the call, samples are never mutated, and nothing is cached across
// invocations. Nil entries in samples are skipped; one bad document never
// aborts the rest of the fold.
func Infer(collection string, samples []bson.D) *Report {
	if len(samples) == 0 {
		return emptyReport(collection)
	}

	records := make(map[string]*fieldRecord)
	for i, doc := range samples {
		if doc == nil {
			continue
		}
		walkDocument(doc, "", uint32(i), records)
	}

	return buildReport(collection, len(samples), records)
}

// walkDocument visits every key at the current nesting level, recording the
// dotted path, type tag, example, and presence ordinal, then descends into
// nested documents. Arrays are opaque leaves: they are tagged at their own
// path and never expanded element by element.
func walkDocument(doc bson.D, prefix string, ordinal uint32, records map[string]*fieldRecord) {
	for _, elem := range doc {
		path := elem.Key
		if prefix != "" {
			path = prefix + "." + elem.Key
		}

		rec := records[path]
		if rec == nil {
			rec = newFieldRecord()
			records[path] = rec
		}

		rec.seen.Add(ordinal)

		tag := Classify(elem.Value)
		rec.types[tag] = true

		if tag != TagNull && len(rec.examples) < maxExamples {
			rec.examples = append(rec.examples, RenderValue(elem.Value))
		}

		if tag == TagObject {
			if nested, ok := asDocument(elem.Value); ok {
				walkDocument(nested, path, ordinal, records)
			}
		}
	}
}

// Classify maps a BSON value to its type tag. The tag set is closed: values
// outside the recognized kinds classify as unknown rather than leaking
// driver-internal type names into reports.
func Classify(v any) string {
	switch v.(type) {
	case primitive.A, []any:
		return TagArray
	case nil, primitive.Null, primitive.Undefined:
		return TagNull
	case primitive.DateTime, primitive.Timestamp, time.Time:
		return TagDate
	case primitive.ObjectID:
		return TagObjectID
	case bson.D, bson.M, map[string]any:
		return TagObject
	case string:
		return TagString
	case int, int32, int64, float32, float64, primitive.Decimal128:
		return TagNumber
	case bool:
		return TagBoolean
	default:
		return TagUnknown
	}
}

// asDocument normalizes the document-shaped BSON value forms to bson.D.
// Map forms are sorted by key so nested walk order is deterministic.
func asDocument(v any) (bson.D, bool) {
	switch val := v.(type) {
	case bson.D:
		return val, true
	case bson.M:
		return mapToDocument(val), true
	case map[string]any:
		return mapToDocument(val), true
	default:
		return nil, false
	}
}

func mapToDocument(m map[string]any) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(m))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: m[k]})
	}
	return doc
}

// RenderValue converts a BSON value into a JSON-marshalable form.
// ObjectIDs render as hex strings and datetimes as RFC 3339 so reports
// serialize cleanly through the tool result layer.
func RenderValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC().Format(time.RFC3339)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return val.String()
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = RenderValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = RenderValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, elem := range val {
			out[elem.Key] = RenderValue(elem.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = RenderValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = RenderValue(item)
		}
		return out
	default:
		return v
	}
}

func buildReport(collection string, sampleSize int, records map[string]*fieldRecord) *Report {
	fields := make(map[string]FieldSummary, len(records))
	for path, rec := range records {
		types := make([]string, 0, len(rec.types))
		for t := range rec.types {
			types = append(types, t)
		}
		sort.Strings(types)

		count := int(rec.seen.GetCardinality())
		pct := int(math.Round(float64(count) / float64(sampleSize) * 100))
		if pct < 1 {
			// Rounding drops sub-0.5% fields to zero; anything observed
			// at all reports at least 1%.
			pct = 1
		}
		fields[path] = FieldSummary{
			Types:      types,
			Examples:   rec.examples,
			Frequency:  formatFrequency(count, sampleSize),
			Percentage: pct,
		}
	}

	return &Report{
		Collection: collection,
		SampleSize: sampleSize,
		Fields:     fields,
		Summary: ReportSummary{
			TotalFields:    len(fields),
			TotalDocuments: sampleSize,
		},
	}
}
