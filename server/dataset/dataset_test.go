package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/query"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	engine := query.NewEngine(nil, zerolog.Nop())
	return NewService(engine, zerolog.Nop())
}

func writeFixture(t *testing.T, dir, name, content string) catalog.Item {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	kind, err := catalog.Classify(path)
	require.NoError(t, err)
	return catalog.Item{Name: name, Path: path, Kind: kind}
}

// writeParquetShard writes a two-column parquet file with the given rows.
func writeParquetShard(t *testing.T, path string, ids []int64, names []string) {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String},
	}, nil)

	pool := memory.NewGoAllocator()
	idBuilder := array.NewInt64Builder(pool)
	defer idBuilder.Release()
	idBuilder.AppendValues(ids, nil)

	nameBuilder := array.NewStringBuilder(pool)
	defer nameBuilder.Release()
	nameBuilder.AppendValues(names, nil)

	idArr := idBuilder.NewArray()
	defer idArr.Release()
	nameArr := nameBuilder.NewArray()
	defer nameArr.Release()

	record := array.NewRecord(schema, []arrow.Array{idArr, nameArr}, int64(len(ids)))
	defer record.Release()

	file, err := os.Create(path)
	require.NoError(t, err)

	writer, err := pqarrow.NewFileWriter(schema, file, nil, pqarrow.DefaultWriterProps())
	require.NoError(t, err)
	require.NoError(t, writer.Write(record))
	require.NoError(t, writer.Close())
}

const citiesCSV = `city,population
amsterdam,821752
bergen,285911
cork,222333
dublin,544107
essen,582760
florence,382258
ghent,262219
`

func TestCSVPage(t *testing.T) {
	svc := newTestService(t)
	item := writeFixture(t, t.TempDir(), "cities.csv", citiesCSV)

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 1, PageSize: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"city", "population"}, res.Columns)
	assert.Equal(t, int64(3), res.Count)
	assert.Equal(t, Pagination{Page: 1, PageSize: 3, Total: 7, HasNext: true}, res.Pagination)

	records, ok := res.Data.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, records, 3)
	assert.Equal(t, "amsterdam", records[0]["city"])
	assert.EqualValues(t, 821752, records[0]["population"])
}

func TestCSVLastPage(t *testing.T) {
	svc := newTestService(t)
	item := writeFixture(t, t.TempDir(), "cities.csv", citiesCSV)

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 3, PageSize: 3})
	require.NoError(t, err)

	records := res.Data.([]map[string]interface{})
	require.Len(t, records, 1)
	assert.Equal(t, "ghent", records[0]["city"])
	assert.Equal(t, Pagination{Page: 3, PageSize: 3, Total: 7, HasNext: false}, res.Pagination)
}

func TestCSVPageBeyondEnd(t *testing.T) {
	svc := newTestService(t)
	item := writeFixture(t, t.TempDir(), "cities.csv", citiesCSV)

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 9, PageSize: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Count)
	assert.Equal(t, Pagination{Page: 9, PageSize: 5, Total: 7, HasNext: false}, res.Pagination)
}

func TestTSVPageUsesTabSeparator(t *testing.T) {
	svc := newTestService(t)
	item := writeFixture(t, t.TempDir(), "readings.tsv", "berth\tdepth\nnorth\t12\nsouth\t9\n")

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 1, PageSize: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"berth", "depth"}, res.Columns)
	records := res.Data.([]map[string]interface{})
	require.Len(t, records, 2)
	assert.Equal(t, "north", records[0]["berth"])
	assert.EqualValues(t, 12, records[0]["depth"])
}

func TestTXTPageTreatedAsTabSeparated(t *testing.T) {
	svc := newTestService(t)
	item := writeFixture(t, t.TempDir(), "berths.txt", "name\tslots\neast\t4\n")

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "slots"}, res.Columns)
	assert.Equal(t, int64(1), res.Pagination.Total)
}

func TestParquetFilePage(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.parquet")
	writeParquetShard(t, path, []int64{1, 2, 3, 4}, []string{"a", "b", "c", "d"})

	item := catalog.Item{Name: "trips.parquet", Path: path, Kind: catalog.KindParquetFile}

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, res.Columns)
	records := res.Data.([]map[string]interface{})
	require.Len(t, records, 2)
	assert.EqualValues(t, 3, records[0]["id"])
	assert.Equal(t, Pagination{Page: 2, PageSize: 2, Total: 4, HasNext: false}, res.Pagination)
}

func TestParquetFolderPageGlobsShards(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	folder := filepath.Join(dir, "shards")
	require.NoError(t, os.Mkdir(folder, 0755))
	writeParquetShard(t, filepath.Join(folder, "part-0.parquet"), []int64{1, 2, 3}, []string{"a", "b", "c"})
	writeParquetShard(t, filepath.Join(folder, "part-1.parquet"), []int64{4, 5, 6}, []string{"d", "e", "f"})
	writeParquetShard(t, filepath.Join(folder, "part-2.parquet"), []int64{7, 8}, []string{"g", "h"})

	item := catalog.Item{Name: "shards", Path: folder, Kind: catalog.KindParquetFolder}

	res, err := svc.Page(context.Background(), item, PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Equal(t, int64(8), res.Count)
	assert.Equal(t, Pagination{Page: 1, PageSize: 10, Total: 8, HasNext: false}, res.Pagination)

	// Last partial page across the shard boundary
	last, err := svc.Page(context.Background(), item, PageRequest{Page: 3, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), last.Count)
	assert.Equal(t, Pagination{Page: 3, PageSize: 3, Total: 8, HasNext: false}, last.Pagination)
}

func TestPageRejectsPlainFolders(t *testing.T) {
	svc := newTestService(t)
	item := catalog.Item{Name: "archive", Path: "/data/archive", Kind: catalog.KindPlainFolder}

	_, err := svc.Page(context.Background(), item, DefaultPageRequest())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrUnsupportedKind))
}

func TestPageMissingFileFails(t *testing.T) {
	svc := newTestService(t)
	item := catalog.Item{
		Name: "gone.csv",
		Path: filepath.Join(t.TempDir(), "gone.csv"),
		Kind: catalog.KindCSVFile,
	}

	_, err := svc.Page(context.Background(), item, DefaultPageRequest())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, query.ErrExecuteFailed))
}
