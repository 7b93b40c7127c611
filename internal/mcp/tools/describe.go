package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/docsift/mongo-mcp/pkg/docschema"
)

// DescribeDatabaseInput is the input for mongodb_describe_database.
type DescribeDatabaseInput struct {
	SampleSize int `json:"sample_size,omitempty" jsonschema:"Documents to sample per collection (default: 100, capped by server config)"`
}

// CollectionOverview is the compact per-collection view in a database
// description: field paths with their type tags and frequency, no examples.
type CollectionOverview struct {
	Name        string            `json:"name"`
	SampledDocs int               `json:"sampled_docs"`
	TotalFields int               `json:"total_fields"`
	Fields      map[string]string `json:"fields"` // path -> "types (frequency)"
	Note        string            `json:"note,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// DescribeDatabaseOutput is the output for mongodb_describe_database.
type DescribeDatabaseOutput struct {
	Database    string               `json:"database"`
	Collections []CollectionOverview `json:"collections"`
	Total       int                  `json:"total"`
}

// ToolDescribeDatabase runs schema inference across every collection in the
// database, fanning out over a bounded worker pool. Each collection's
// inference is independent, so one failing collection degrades to an error
// entry instead of failing the whole description.
func ToolDescribeDatabase(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeDatabaseInput) (*sdkmcp.CallToolResult, DescribeDatabaseOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeDatabaseInput) (*sdkmcp.CallToolResult, DescribeDatabaseOutput, error) {
		names, err := d.Store.ListCollections(ctx)
		if err != nil {
			return nil, DescribeDatabaseOutput{}, WrapStoreError(err)
		}

		sampleSize := d.SampleSize(input.SampleSize)
		overviews := make([]CollectionOverview, len(names))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.Config.DescribeWorkers)

		for i, name := range names {
			g.Go(func() error {
				samples, err := d.Store.FetchSample(gctx, name, sampleSize)
				if err != nil {
					overviews[i] = CollectionOverview{Name: name, Fields: map[string]string{}, Error: err.Error()}
					return nil
				}
				overviews[i] = buildOverview(docschema.Infer(name, samples))
				return nil
			})
		}
		// Workers never return errors; Wait only orders the writes above.
		_ = g.Wait()

		return nil, DescribeDatabaseOutput{
			Database:    d.Store.Database(),
			Collections: overviews,
			Total:       len(overviews),
		}, nil
	}
}

func buildOverview(report *docschema.Report) CollectionOverview {
	fields := make(map[string]string, len(report.Fields))
	for path, summary := range report.Fields {
		fields[path] = strings.Join(summary.Types, "|") + " (" + summary.Frequency + ")"
	}
	return CollectionOverview{
		Name:        report.Collection,
		SampledDocs: report.SampleSize,
		TotalFields: report.Summary.TotalFields,
		Fields:      fields,
		Note:        report.Note,
	}
}
