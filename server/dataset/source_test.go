package dataset

import (
	"testing"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceExpr(t *testing.T) {
	tests := []struct {
		name string
		item catalog.Item
		want string
	}{
		{
			name: "csv",
			item: catalog.Item{Path: "/data/cities.csv", Kind: catalog.KindCSVFile},
			want: "read_csv_auto('/data/cities.csv')",
		},
		{
			name: "tsv uses tab separator",
			item: catalog.Item{Path: "/data/readings.tsv", Kind: catalog.KindTSVFile},
			want: "read_csv_auto('/data/readings.tsv', sep='\t')",
		},
		{
			name: "txt uses tab separator",
			item: catalog.Item{Path: "/data/berths.txt", Kind: catalog.KindTSVFile},
			want: "read_csv_auto('/data/berths.txt', sep='\t')",
		},
		{
			name: "parquet file is a bare path literal",
			item: catalog.Item{Path: "/data/trips.parquet", Kind: catalog.KindParquetFile},
			want: "'/data/trips.parquet'",
		},
		{
			name: "parquet folder globs direct children",
			item: catalog.Item{Path: "/data/shards", Kind: catalog.KindParquetFolder},
			want: "'/data/shards/*.parquet'",
		},
		{
			name: "json",
			item: catalog.Item{Path: "/data/inventory.json", Kind: catalog.KindJSONFile},
			want: "read_json_auto('/data/inventory.json')",
		},
		{
			name: "path with single quote is doubled",
			item: catalog.Item{Path: "/data/o'brien.csv", Kind: catalog.KindCSVFile},
			want: "read_csv_auto('/data/o''brien.csv')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SourceExpr(tt.item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceExprUnsupported(t *testing.T) {
	for _, kind := range []catalog.Kind{catalog.KindPlainFolder, catalog.KindUnsupported} {
		_, err := SourceExpr(catalog.Item{Path: "/data/x", Kind: kind})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrUnsupportedKind))
	}
}
