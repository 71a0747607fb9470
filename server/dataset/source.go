package dataset

import (
	"fmt"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/query"
)

// SourceExpr returns the DuckDB table expression for a resource. Paths
// are embedded as quoted literals; a parquet folder becomes a glob over
// its direct *.parquet children.
func SourceExpr(item catalog.Item) (string, error) {
	switch item.Kind {
	case catalog.KindCSVFile:
		return fmt.Sprintf("read_csv_auto(%s)", query.QuoteLiteral(item.Path)), nil
	case catalog.KindTSVFile:
		return fmt.Sprintf("read_csv_auto(%s, sep='\t')", query.QuoteLiteral(item.Path)), nil
	case catalog.KindParquetFile:
		return query.QuoteLiteral(item.Path), nil
	case catalog.KindParquetFolder:
		return query.QuoteLiteral(item.Path + "/*.parquet"), nil
	case catalog.KindJSONFile:
		return fmt.Sprintf("read_json_auto(%s)", query.QuoteLiteral(item.Path)), nil
	default:
		return "", errors.Newf(ErrUnsupportedKind, "no source expression for kind %s", item.Kind)
	}
}
