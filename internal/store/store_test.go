package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestGuardWrite(t *testing.T) {
	rw := New("app")
	assert.NoError(t, rw.guardWrite("insert"))

	ro := New("app", WithReadOnly(true))
	err := ro.guardWrite("insert")
	require.Error(t, err)

	var coded *Error
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, ErrCodeReadOnly, coded.Code)
}

func TestWriteOpsRejectedInReadOnlyMode(t *testing.T) {
	s := New("app", WithReadOnly(true))
	ctx := context.Background()

	// Read-only rejection happens before any connection attempt.
	_, err := s.InsertMany(ctx, "users", nil)
	assertCode(t, err, ErrCodeReadOnly)

	_, _, err = s.UpdateMany(ctx, "users", nil, nil)
	assertCode(t, err, ErrCodeReadOnly)

	_, err = s.DeleteMany(ctx, "users", nil)
	assertCode(t, err, ErrCodeReadOnly)
}

func TestCollectionNameRequired(t *testing.T) {
	s := New("app")
	_, err := s.collection(context.Background(), "")
	assertCode(t, err, ErrCodeCommand)
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("op", nil))

	assertCode(t, wrapError("op", mongo.ErrNoDocuments), ErrCodeNotFound)
	assertCode(t, wrapError("op", context.DeadlineExceeded), ErrCodeTimeout)
	assertCode(t, wrapError("op", mongo.ErrClientDisconnected), ErrCodeUnavailable)
	assertCode(t, wrapError("op", errors.New("boom")), ErrCodeCommand)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := wrapError("op", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "op failed")
}

func TestFormatID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), formatID(oid))
	assert.Equal(t, "42", formatID(42))
	assert.Equal(t, "custom", formatID("custom"))
}

func TestNormalizeIndexDirection(t *testing.T) {
	assert.Equal(t, 1, normalizeIndexDirection(int32(1)))
	assert.Equal(t, -1, normalizeIndexDirection(int64(-1)))
	assert.Equal(t, 1, normalizeIndexDirection(float64(1)))
	assert.Equal(t, "text", normalizeIndexDirection("text"))
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var coded *Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, code, coded.Code)
}
