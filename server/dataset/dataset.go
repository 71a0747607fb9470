package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/query"
	"github.com/rs/zerolog"
)

// ComponentType defines the dataset service component type identifier
const ComponentType = "dataset"

// PageResult is one page of resource data in its wire shape. Columns is
// nil for JSON resources, which serve documents rather than rows.
type PageResult struct {
	Data       interface{} `json:"data"`
	Columns    []string    `json:"columns,omitempty"`
	Count      int64       `json:"count"`
	Pagination Pagination  `json:"pagination"`
}

// Service produces pages, schemas and listings for catalog items. It
// opens one engine session per request and holds no state between them.
type Service struct {
	engine *query.Engine
	logger zerolog.Logger
}

// NewService creates a dataset service on top of the query engine.
func NewService(engine *query.Engine, logger zerolog.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger.With().Str("component", ComponentType).Logger(),
	}
}

// Page returns one page of the resource's data.
func (s *Service) Page(ctx context.Context, item catalog.Item, req PageRequest) (*PageResult, error) {
	switch {
	case item.Kind == catalog.KindJSONFile:
		return s.jsonPage(item, req)
	case item.Kind.Queryable():
		return s.tablePage(ctx, item, req)
	default:
		return nil, errors.Newf(ErrUnsupportedKind, "resource %s has no data pages", item.Name)
	}
}

// tablePage serves the queryable kinds with the two-query pattern:
// COUNT(*) for the total, then LIMIT/OFFSET for the page itself, both
// on the same session.
func (s *Service) tablePage(ctx context.Context, item catalog.Item, req PageRequest) (*PageResult, error) {
	source, err := SourceExpr(item)
	if err != nil {
		return nil, err
	}

	session, err := s.engine.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	countResult, err := session.Execute(ctx, fmt.Sprintf("SELECT COUNT(*) AS cnt FROM %s", source))
	if err != nil {
		return nil, err
	}
	var total int64
	if len(countResult.Rows) > 0 && len(countResult.Rows[0]) > 0 {
		total = toInt64(countResult.Rows[0][0])
	}

	pageSQL := fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", source, req.PageSize, req.Offset())
	pageResult, err := session.Execute(ctx, pageSQL)
	if err != nil {
		return nil, err
	}

	records := pageResult.Records()

	s.logger.Debug().
		Str("resource", item.Key()).
		Int("page", req.Page).
		Int64("total", total).
		Int("rows", len(records)).
		Msg("served data page")

	return &PageResult{
		Data:       records,
		Columns:    pageResult.ColumnNames(),
		Count:      int64(len(records)),
		Pagination: paginationFor(req, total),
	}, nil
}

// toInt64 narrows the scan value of a COUNT(*) to int64.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// formatValue renders a scanned value the way examples are served:
// timestamps in their SQL text form, bytes as text, everything else
// through the default formatter.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
