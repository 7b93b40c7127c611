// Package transform provides JQ-based post-processing of query results.
package transform

import (
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
)

// Engine executes JQ expressions against already-fetched documents.
type Engine struct{}

// NewEngine creates a new transform engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the values produced by a JQ transform.
type Result struct {
	Values []any    `json:"values"`           // emitted values, in order
	Errors []string `json:"errors,omitempty"` // per-value errors (e.g. type mismatch)
}

// Apply runs a JQ expression against each input document and collects the
// emitted values, up to maxResults (0 means unlimited). A per-document JQ
// error is recorded and processing continues; only an invalid expression is
// fatal.
func (e *Engine) Apply(docs []any, expression string, maxResults int) (*Result, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}

	for _, doc := range docs {
		iter := code.Run(doc)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}

			if jqErr, isErr := v.(error); isErr {
				var haltErr *gojq.HaltError
				if errors.As(jqErr, &haltErr) && haltErr.Value() == nil {
					return result, nil
				}
				result.Errors = append(result.Errors, jqErr.Error())
				continue
			}

			if v == nil {
				continue
			}

			result.Values = append(result.Values, v)
			if maxResults > 0 && len(result.Values) >= maxResults {
				return result, nil
			}
		}
	}

	return result, nil
}

// Validate checks that an expression parses, for fail-fast input checks
// before any documents are fetched.
func Validate(expression string) error {
	if _, err := gojq.Parse(expression); err != nil {
		return fmt.Errorf("invalid jq expression: %w", err)
	}
	return nil
}
