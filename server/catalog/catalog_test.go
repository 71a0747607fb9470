package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResourceKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"sales_data.csv", "sales_data.csv"},
		{"Sales Data.csv", "sales_data.csv"},
		{"sales-data.csv", "sales_data.csv"},
		{"MiXeD-CaSe File.JSON", "mixed_case_file.json"},
		{"shards", "shards"},
		{"Harbor Readings.tsv", "harbor_readings.tsv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResourceKey(tt.name)
			assert.Equal(t, tt.expected, got)

			// Applying the derivation to a key must be a no-op
			assert.Equal(t, got, ResourceKey(got))
		})
	}
}

func TestSchemaKey(t *testing.T) {
	assert.Equal(t, "sales_data.csv_columnnames", SchemaKey("sales_data.csv"))
}

func TestClassifyFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file     string
		expected Kind
	}{
		{"a.json", KindJSONFile},
		{"b.csv", KindCSVFile},
		{"c.tsv", KindTSVFile},
		{"d.txt", KindTSVFile},
		{"e.parquet", KindParquetFile},
		{"f.CSV", KindUnsupported},  // extension matching is case-sensitive
		{"g.JSON", KindUnsupported}, // extension matching is case-sensitive
		{"readme.md", KindUnsupported},
		{"noext", KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, "x")
			kind, err := Classify(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestClassifyFolders(t *testing.T) {
	t.Run("folder with parquet child", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "part-0.parquet", "x")
		writeFile(t, dir, "notes.txt", "x")

		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindParquetFolder, kind)
	})

	t.Run("folder without parquet children", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "notes.txt", "x")
		writeFile(t, dir, "sub/part-0.parquet", "x") // nested, not direct

		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindPlainFolder, kind)
	})

	t.Run("empty folder", func(t *testing.T) {
		kind, err := Classify(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, KindPlainFolder, kind)
	})

	t.Run("subdirectory named like a parquet file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "x.parquet"), 0755))

		// Only files count toward parquet folder detection
		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindPlainFolder, kind)
	})
}

func TestClassifyMissingPath(t *testing.T) {
	_, err := Classify(filepath.Join(t.TempDir(), "gone.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrClassifyFailed))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindCSVFile.IsFile())
	assert.True(t, KindJSONFile.IsFile())
	assert.False(t, KindParquetFolder.IsFile())
	assert.True(t, KindParquetFolder.IsFolder())
	assert.True(t, KindPlainFolder.IsFolder())

	assert.True(t, KindCSVFile.Queryable())
	assert.True(t, KindTSVFile.Queryable())
	assert.True(t, KindParquetFile.Queryable())
	assert.True(t, KindParquetFolder.Queryable())
	assert.False(t, KindJSONFile.Queryable())
	assert.False(t, KindPlainFolder.Queryable())

	assert.True(t, KindJSONFile.HasSchema())
	assert.True(t, KindParquetFolder.HasSchema())
	assert.False(t, KindPlainFolder.HasSchema())
	assert.False(t, KindUnsupported.HasSchema())
}

func TestBuildScansLexicographically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zebra.csv", "a\n1\n")
	writeFile(t, dir, "alpha.json", "[]")
	writeFile(t, dir, "middle.txt", "a\n1\n")
	writeFile(t, dir, "ignored.xml", "<x/>")

	c, err := Build(dir, nil, testLogger())
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "alpha.json", items[0].Name)
	assert.Equal(t, "middle.txt", items[1].Name)
	assert.Equal(t, "zebra.csv", items[2].Name)

	assert.Equal(t, dir, c.DataPath())
	assert.Equal(t, 3, c.Len())
}

func TestBuildExplicitNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.csv", "a\n1\n")
	writeFile(t, dir, "two.json", "[]")
	writeFile(t, dir, "three.tsv", "a\n1\n")

	c, err := Build(dir, []string{"two.json", "missing.csv", "one.csv"}, testLogger())
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	// Registration follows the given order; missing names are dropped
	assert.Equal(t, "two.json", items[0].Name)
	assert.Equal(t, "one.csv", items[1].Name)

	_, ok := c.Resolve("three.tsv")
	assert.False(t, ok, "entries outside the allow-list must not resolve")
}

func TestBuildRegistersFolders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shards/part-0.parquet", "x")
	writeFile(t, dir, "docs/readme.md", "x")

	c, err := Build(dir, nil, testLogger())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	docs, ok := c.Resolve("docs")
	require.True(t, ok)
	assert.Equal(t, KindPlainFolder, docs.Kind)

	shards, ok := c.Resolve("shards")
	require.True(t, ok)
	assert.Equal(t, KindParquetFolder, shards.Kind)
}

func TestBuildKeyCollisionLastWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my data.csv", "a\n1\n")
	writeFile(t, dir, "my-data.csv", "b\n2\n")

	c, err := Build(dir, nil, testLogger())
	require.NoError(t, err)

	// Both entries remain visible in the item list
	require.Equal(t, 2, c.Len())

	// The dispatch table keeps the later registration
	item, ok := c.Resolve("my_data.csv")
	require.True(t, ok)
	assert.Equal(t, "my-data.csv", item.Name)

	assert.Equal(t, []string{"my_data.csv"}, c.Keys())
}

func TestResolveDataPath(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		resolved, err := ResolveDataPath(dir)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(resolved))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolveDataPath(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrDataPathMissing))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "file.csv", "a\n1\n")
		_, err := ResolveDataPath(path)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, ErrDataPathNotDir))
	})

	t.Run("sample keyword", func(t *testing.T) {
		resolved, err := ResolveDataPath(SampleKeyword)
		require.NoError(t, err)

		c, err := Build(resolved, nil, testLogger())
		require.NoError(t, err)

		_, ok := c.Resolve("cities.csv")
		assert.True(t, ok, "sample should register cities.csv")
		_, ok = c.Resolve("harbor_readings.tsv")
		assert.True(t, ok, "sample should register the tsv with a normalized key")
		_, ok = c.Resolve("archive")
		assert.True(t, ok, "sample should register the plain folder")
	})
}
