package mcp

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/mongo-mcp/internal/mcp/tools"
	"github.com/docsift/mongo-mcp/internal/store"
)

type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func swapLogger(t *testing.T) *recordingHandler {
	t.Helper()
	rec := &recordingHandler{}
	prev := slog.Default()
	slog.SetDefault(slog.New(rec))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return rec
}

func attrValue(r slog.Record, key string) (string, bool) {
	var out string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			out = a.Value.String()
			found = true
			return false
		}
		return true
	})
	return out, found
}

func TestLoggingMiddleware_FailureCarriesToolAndCode(t *testing.T) {
	rec := swapLogger(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, &tools.CodedError{Code: tools.ErrCodeReadOnly, Message: "server is in read-only mode"}
	})

	req := &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "mongodb_insert"}}
	_, err := handler(context.Background(), "tools/call", req)
	require.Error(t, err)

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	assert.Equal(t, slog.LevelError, r.Level)

	tool, ok := attrValue(r, "tool")
	require.True(t, ok)
	assert.Equal(t, "mongodb_insert", tool)

	code, ok := attrValue(r, "code")
	require.True(t, ok)
	assert.Equal(t, tools.ErrCodeReadOnly, code)
}

func TestLoggingMiddleware_SuccessLogsMethod(t *testing.T) {
	rec := swapLogger(t)

	handler := LoggingMiddleware()(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, nil
	})

	_, err := handler(context.Background(), "resources/list", nil)
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	assert.Equal(t, slog.LevelInfo, r.Level)

	method, ok := attrValue(r, "method")
	require.True(t, ok)
	assert.Equal(t, "resources/list", method)

	_, ok = attrValue(r, "code")
	assert.False(t, ok)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "tool coded error",
			err:  &tools.CodedError{Code: tools.ErrCodeNotFound, Message: "collection not found"},
			want: tools.ErrCodeNotFound,
		},
		{
			name: "store error",
			err:  &store.Error{Code: store.ErrCodeTimeout, Message: "count timed out"},
			want: store.ErrCodeTimeout,
		},
		{
			name: "wrapped store error",
			err:  errors.Join(errors.New("outer"), &store.Error{Code: store.ErrCodeUnavailable, Message: "no reachable servers"}),
			want: store.ErrCodeUnavailable,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
