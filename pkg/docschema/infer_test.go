package docschema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInfer_BasicFields(t *testing.T) {
	samples := []bson.D{
		{{Key: "id", Value: int32(1)}, {Key: "name", Value: "Alice"}, {Key: "active", Value: true}},
		{{Key: "id", Value: int32(2)}, {Key: "name", Value: "Bob"}, {Key: "active", Value: false}},
		{{Key: "id", Value: int32(3)}, {Key: "name", Value: "Charlie"}, {Key: "active", Value: true}},
	}

	report := Infer("users", samples)
	require.NotNil(t, report)

	assert.Equal(t, "users", report.Collection)
	assert.Equal(t, 3, report.SampleSize)
	assert.Equal(t, 3, report.Summary.TotalFields)
	assert.Equal(t, 3, report.Summary.TotalDocuments)
	assert.Empty(t, report.Note)

	id := report.Fields["id"]
	assert.Equal(t, []string{TagNumber}, id.Types)
	assert.Equal(t, "3/3", id.Frequency)
	assert.Equal(t, 100, id.Percentage)

	name := report.Fields["name"]
	assert.Equal(t, []string{TagString}, name.Types)
	assert.Equal(t, []any{"Alice", "Bob", "Charlie"}, name.Examples)

	active := report.Fields["active"]
	assert.Equal(t, []string{TagBoolean}, active.Types)
}

func TestInfer_PartialPresence(t *testing.T) {
	samples := []bson.D{
		{{Key: "id", Value: int32(1)}, {Key: "email", Value: "alice@example.com"}},
		{{Key: "id", Value: int32(2)}},
		{{Key: "id", Value: int32(3)}},
	}

	report := Infer("users", samples)

	email := report.Fields["email"]
	assert.Equal(t, "1/3", email.Frequency)
	assert.Equal(t, 33, email.Percentage)

	id := report.Fields["id"]
	assert.Equal(t, "3/3", id.Frequency)
	assert.Equal(t, 100, id.Percentage)
}

func TestInfer_RareFieldPercentageFloor(t *testing.T) {
	// A field seen once in 300 documents rounds to 0%, but any observed
	// field must report at least 1%.
	samples := make([]bson.D, 300)
	for i := range samples {
		samples[i] = bson.D{{Key: "id", Value: int32(i)}}
	}
	samples[0] = bson.D{{Key: "id", Value: int32(0)}, {Key: "rare", Value: "x"}}

	report := Infer("events", samples)

	rare := report.Fields["rare"]
	assert.Equal(t, "1/300", rare.Frequency)
	assert.Equal(t, 1, rare.Percentage)

	id := report.Fields["id"]
	assert.Equal(t, 100, id.Percentage)
}

func TestInfer_TypeUnion(t *testing.T) {
	samples := []bson.D{
		{{Key: "a", Value: int32(1)}},
		{{Key: "a", Value: "x"}},
	}

	report := Infer("mixed", samples)

	a := report.Fields["a"]
	assert.Equal(t, []string{TagNumber, TagString}, a.Types)
	assert.Equal(t, "2/2", a.Frequency)
}

func TestInfer_NestedObjects(t *testing.T) {
	samples := []bson.D{
		{{Key: "user", Value: bson.D{
			{Key: "id", Value: int32(1)},
			{Key: "address", Value: bson.D{{Key: "city", Value: "Oslo"}}},
		}}},
		{{Key: "user", Value: bson.D{{Key: "id", Value: int32(2)}}}},
	}

	report := Infer("accounts", samples)

	require.Contains(t, report.Fields, "user")
	require.Contains(t, report.Fields, "user.id")
	require.Contains(t, report.Fields, "user.address")
	require.Contains(t, report.Fields, "user.address.city")

	assert.Equal(t, []string{TagObject}, report.Fields["user"].Types)
	assert.Equal(t, "2/2", report.Fields["user"].Frequency)
	assert.Equal(t, "1/2", report.Fields["user.address.city"].Frequency)
	assert.Equal(t, 50, report.Fields["user.address.city"].Percentage)
}

func TestInfer_NestedMapForms(t *testing.T) {
	// Nested documents may decode as bson.M or map[string]any depending on
	// the producer; both must fold identically to bson.D.
	samples := []bson.D{
		{{Key: "meta", Value: bson.M{"source": "import", "version": int64(2)}}},
		{{Key: "meta", Value: map[string]any{"source": "api"}}},
	}

	report := Infer("events", samples)

	assert.Equal(t, "2/2", report.Fields["meta.source"].Frequency)
	assert.Equal(t, "1/2", report.Fields["meta.version"].Frequency)
	assert.Equal(t, []string{TagNumber}, report.Fields["meta.version"].Types)
}

func TestInfer_ArraysAreOpaque(t *testing.T) {
	samples := []bson.D{
		{{Key: "tags", Value: primitive.A{
			bson.D{{Key: "x", Value: int32(1)}},
			bson.D{{Key: "y", Value: int32(2)}},
		}}},
	}

	report := Infer("tagged", samples)

	require.Contains(t, report.Fields, "tags")
	assert.Equal(t, []string{TagArray}, report.Fields["tags"].Types)
	assert.NotContains(t, report.Fields, "tags.x")
	assert.NotContains(t, report.Fields, "tags.y")
}

func TestInfer_ExampleCapAndNullExclusion(t *testing.T) {
	samples := []bson.D{
		{{Key: "v", Value: "a"}},
		{{Key: "v", Value: nil}},
		{{Key: "v", Value: "b"}},
		{{Key: "v", Value: "c"}},
		{{Key: "v", Value: "d"}},
	}

	report := Infer("vals", samples)

	v := report.Fields["v"]
	// Null counts toward types and presence but is never captured; the cap
	// holds the first three non-null values.
	assert.Equal(t, []string{TagNull, TagString}, v.Types)
	assert.Equal(t, []any{"a", "b", "c"}, v.Examples)
	assert.Equal(t, "5/5", v.Frequency)
	assert.Equal(t, 100, v.Percentage)
}

func TestInfer_EmptySample(t *testing.T) {
	report := Infer("empty", nil)
	require.NotNil(t, report)

	assert.Equal(t, 0, report.SampleSize)
	assert.Empty(t, report.Fields)
	assert.Equal(t, NoDocumentsNote, report.Note)
	assert.Equal(t, 0, report.Summary.TotalFields)
}

func TestInfer_NilDocumentSkipped(t *testing.T) {
	samples := []bson.D{
		{{Key: "a", Value: int32(1)}},
		nil,
		{{Key: "a", Value: int32(2)}},
	}

	report := Infer("dirty", samples)

	// The bad document is skipped but still counts in the sample size.
	assert.Equal(t, 3, report.SampleSize)
	assert.Equal(t, "2/3", report.Fields["a"].Frequency)
	assert.Equal(t, 67, report.Fields["a"].Percentage)
}

func TestInfer_DuplicateKeyCountsOnce(t *testing.T) {
	// BSON permits duplicate keys within one document; presence must still
	// increment once per document.
	samples := []bson.D{
		{{Key: "k", Value: int32(1)}, {Key: "k", Value: "x"}},
	}

	report := Infer("dupes", samples)

	k := report.Fields["k"]
	assert.Equal(t, "1/1", k.Frequency)
	assert.Equal(t, []string{TagNumber, TagString}, k.Types)
}

func TestInfer_BSONKinds(t *testing.T) {
	oid := primitive.NewObjectID()
	when := primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	dec, err := primitive.ParseDecimal128("12.5")
	require.NoError(t, err)

	samples := []bson.D{{
		{Key: "_id", Value: oid},
		{Key: "created_at", Value: when},
		{Key: "price", Value: dec},
		{Key: "count", Value: int64(7)},
		{Key: "ratio", Value: 0.5},
		{Key: "payload", Value: primitive.Binary{Data: []byte{1}}},
	}}

	report := Infer("orders", samples)

	assert.Equal(t, []string{TagObjectID}, report.Fields["_id"].Types)
	assert.Equal(t, []any{oid.Hex()}, report.Fields["_id"].Examples)

	assert.Equal(t, []string{TagDate}, report.Fields["created_at"].Types)
	assert.Equal(t, []any{"2024-05-01T12:00:00Z"}, report.Fields["created_at"].Examples)

	assert.Equal(t, []string{TagNumber}, report.Fields["price"].Types)
	assert.Equal(t, []string{TagNumber}, report.Fields["count"].Types)
	assert.Equal(t, []string{TagNumber}, report.Fields["ratio"].Types)

	assert.Equal(t, []string{TagUnknown}, report.Fields["payload"].Types)
}

func TestInfer_EndToEnd(t *testing.T) {
	samples := []bson.D{
		{{Key: "_id", Value: "1"}, {Key: "name", Value: "Al"}, {Key: "tags", Value: primitive.A{"x"}}},
		{{Key: "_id", Value: "2"}, {Key: "name", Value: int32(42)}},
	}

	report := Infer("people", samples)

	id := report.Fields["_id"]
	assert.Equal(t, []string{TagString}, id.Types)
	assert.Equal(t, "2/2", id.Frequency)
	assert.Equal(t, 100, id.Percentage)

	name := report.Fields["name"]
	assert.Equal(t, []string{TagNumber, TagString}, name.Types)
	assert.Equal(t, "2/2", name.Frequency)
	assert.Equal(t, 100, name.Percentage)

	tags := report.Fields["tags"]
	assert.Equal(t, []string{TagArray}, tags.Types)
	assert.Equal(t, "1/2", tags.Frequency)
	assert.Equal(t, 50, tags.Percentage)
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"primitive array", primitive.A{int32(1)}, TagArray},
		{"go slice", []any{"x"}, TagArray},
		{"nil", nil, TagNull},
		{"bson null", primitive.Null{}, TagNull},
		{"datetime", primitive.NewDateTimeFromTime(time.Now()), TagDate},
		{"time", time.Now(), TagDate},
		{"objectid", primitive.NewObjectID(), TagObjectID},
		{"bson.D", bson.D{}, TagObject},
		{"bson.M", bson.M{}, TagObject},
		{"string", "s", TagString},
		{"int32", int32(1), TagNumber},
		{"int64", int64(1), TagNumber},
		{"float64", 1.5, TagNumber},
		{"bool", true, TagBoolean},
		{"binary", primitive.Binary{}, TagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestReport_PathsSorted(t *testing.T) {
	samples := []bson.D{
		{{Key: "z", Value: int32(1)}, {Key: "a", Value: bson.D{{Key: "b", Value: int32(2)}}}},
	}

	report := Infer("sorted", samples)
	assert.Equal(t, []string{"a", "a.b", "z"}, report.Paths())
}
