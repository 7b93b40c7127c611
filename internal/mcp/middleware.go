package mcp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/internal/mcp/tools"
	"github.com/docsift/mongo-mcp/internal/store"
)

// LoggingMiddleware returns middleware that logs all incoming method calls.
// Tool calls carry the tool name, and failures carry the coded error
// classification so log lines group by failure mode (NOT_FOUND, TIMEOUT,
// READ_ONLY, ...) instead of raw driver text.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				attrs = append(attrs, slog.String("tool", call.Params.Name))
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				if code := ErrorCode(err); code != "" {
					attrs = append(attrs, slog.String("code", code))
				}
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

// ErrorCode extracts the coded classification from tool and store errors.
// Returns "" for errors outside the coded families.
func ErrorCode(err error) string {
	var toolErr *tools.CodedError
	if errors.As(err, &toolErr) {
		return toolErr.Code
	}
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return ""
}
