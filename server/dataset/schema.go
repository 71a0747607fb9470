package dataset

import (
	"context"
	"fmt"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/query"
)

// ColumnInfo describes one column of a resource, with a stringified
// example taken from the first row ("NULL" when there is none).
type ColumnInfo struct {
	ColumnName   string `json:"column_name"`
	DataType     string `json:"data_type"`
	ExampleValue string `json:"example_value"`
}

// SchemaResult is one page of a resource's column schema.
type SchemaResult struct {
	Columns    []ColumnInfo `json:"columns"`
	Count      int64        `json:"count"`
	Pagination Pagination   `json:"pagination"`
}

// Schema introspects a resource's columns through a one-row probe, then
// paginates the column list. Examples are probed per column so a NULL
// in the first row is reported as the sentinel rather than skipped.
func (s *Service) Schema(ctx context.Context, item catalog.Item, req PageRequest) (*SchemaResult, error) {
	if !item.Kind.HasSchema() {
		return nil, errors.Newf(ErrUnsupportedKind, "resource %s has no schema", item.Name)
	}

	source, err := SourceExpr(item)
	if err != nil {
		return nil, err
	}

	session, err := s.engine.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	probe, err := session.Execute(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 1", source))
	if err != nil {
		return nil, err
	}

	all := make([]ColumnInfo, 0, len(probe.Columns))
	for _, col := range probe.Columns {
		dataType := col.Type
		if dataType == "" {
			dataType = "unknown"
		}

		exampleSQL := fmt.Sprintf("SELECT %s FROM %s LIMIT 1", query.QuoteIdent(col.Name), source)
		exampleResult, err := session.Execute(ctx, exampleSQL)
		if err != nil {
			return nil, err
		}

		example := "NULL"
		if len(exampleResult.Rows) > 0 && len(exampleResult.Rows[0]) > 0 && exampleResult.Rows[0][0] != nil {
			example = formatValue(exampleResult.Rows[0][0])
		}

		all = append(all, ColumnInfo{
			ColumnName:   col.Name,
			DataType:     dataType,
			ExampleValue: example,
		})
	}

	total := int64(len(all))
	start := req.Offset()
	end := start + req.PageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]

	s.logger.Debug().
		Str("resource", item.Key()).
		Int("page", req.Page).
		Int64("columns", total).
		Msg("served schema page")

	return &SchemaResult{
		Columns:    page,
		Count:      int64(len(page)),
		Pagination: paginationFor(req, total),
	}, nil
}
