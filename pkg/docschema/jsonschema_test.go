package docschema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReportSchema_NestedPaths(t *testing.T) {
	samples := []bson.D{
		{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user", Value: bson.D{{Key: "name", Value: "Alice"}}},
			{Key: "tags", Value: primitive.A{"x"}},
		},
	}

	schema := ReportSchema(Infer("users", samples))
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema.Type)

	id, ok := schema.Properties.Get("_id")
	require.True(t, ok)
	assert.Equal(t, "string", id.Type)
	assert.Equal(t, "^[0-9a-fA-F]{24}$", id.Pattern)

	user, ok := schema.Properties.Get("user")
	require.True(t, ok)
	assert.Equal(t, "object", user.Type)

	name, ok := user.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, "string", name.Type)

	tags, ok := schema.Properties.Get("tags")
	require.True(t, ok)
	assert.Equal(t, "array", tags.Type)
	assert.Nil(t, tags.Items)
}

func TestReportSchema_TypeUnionBecomesAnyOf(t *testing.T) {
	samples := []bson.D{
		{{Key: "v", Value: int32(1)}},
		{{Key: "v", Value: "x"}},
	}

	schema := ReportSchema(Infer("mixed", samples))

	v, ok := schema.Properties.Get("v")
	require.True(t, ok)
	assert.Empty(t, v.Type)
	require.Len(t, v.AnyOf, 2)
	assert.Equal(t, "number", v.AnyOf[0].Type)
	assert.Equal(t, "string", v.AnyOf[1].Type)
}

func TestReportSchema_Empty(t *testing.T) {
	schema := ReportSchema(Infer("empty", nil))
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema.Type)
	assert.Nil(t, schema.Properties.Oldest())

	assert.NotNil(t, ReportSchema(nil))
}

func TestReportSchema_DateFormat(t *testing.T) {
	samples := []bson.D{
		{{Key: "at", Value: primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))}},
	}

	schema := ReportSchema(Infer("events", samples))

	at, ok := schema.Properties.Get("at")
	require.True(t, ok)
	assert.Equal(t, "string", at.Type)
	assert.Equal(t, "date-time", at.Format)
}
