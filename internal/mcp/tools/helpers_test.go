package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docsift/mongo-mcp/internal/store"
)

func TestBuildSort(t *testing.T) {
	assert.Nil(t, buildSort(nil))
	assert.Nil(t, buildSort([]string{""}))

	sort := buildSort([]string{"-created_at", "name"})
	require.Len(t, sort, 2)
	assert.Equal(t, bson.E{Key: "created_at", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "name", Value: 1}, sort[1])
}

func TestBuildProjection(t *testing.T) {
	assert.Nil(t, buildProjection(nil))

	proj := buildProjection([]string{"name", "meta.tags"})
	require.Len(t, proj, 2)
	assert.Equal(t, bson.E{Key: "name", Value: 1}, proj[0])
	assert.Equal(t, bson.E{Key: "meta.tags", Value: 1}, proj[1])
}

func TestToFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, toFilter(nil))
	assert.Equal(t, bson.M{"a": 1}, toFilter(map[string]any{"a": 1}))
}

func TestRenderDocuments(t *testing.T) {
	oid := primitive.NewObjectID()
	docs := []bson.M{
		{"_id": oid, "name": "Al"},
	}

	rendered := renderDocuments(docs)
	require.Len(t, rendered, 1)
	assert.Equal(t, oid.Hex(), rendered[0]["_id"])
	assert.Equal(t, "Al", rendered[0]["name"])
}

func TestToAny(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}
	v, err := ToAny(payload{N: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": float64(3)}, v)
}

func TestPipelineHasLimit(t *testing.T) {
	assert.False(t, pipelineHasLimit([]bson.M{{"$match": bson.M{}}}))
	assert.True(t, pipelineHasLimit([]bson.M{{"$match": bson.M{}}, {"$limit": 5}}))
}

func TestValidateUpdateDocument(t *testing.T) {
	assert.Error(t, validateUpdateDocument(nil))
	assert.Error(t, validateUpdateDocument(map[string]any{"name": "x"}))
	assert.NoError(t, validateUpdateDocument(map[string]any{"$set": map[string]any{"name": "x"}}))
}

func TestWrapStoreError(t *testing.T) {
	assert.NoError(t, WrapStoreError(nil))

	tests := []struct {
		name      string
		storeCode string
		wantCode  string
	}{
		{"not found", store.ErrCodeNotFound, ErrCodeNotFound},
		{"timeout", store.ErrCodeTimeout, ErrCodeTimeout},
		{"read only", store.ErrCodeReadOnly, ErrCodeReadOnly},
		{"command", store.ErrCodeCommand, ErrCodeMongoError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapStoreError(&store.Error{Code: tt.storeCode, Message: "m"})
			var coded *CodedError
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, tt.wantCode, coded.Code)
		})
	}

	plain := WrapStoreError(errors.New("boom"))
	var coded *CodedError
	require.ErrorAs(t, plain, &coded)
	assert.Equal(t, ErrCodeMongoError, coded.Code)
}
