package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/gear6io/mallard/server/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dataPath string, items []string) *config.Config {
	cfg := config.LoadDefaultConfig()
	cfg.Data.Path = dataPath
	cfg.Data.Items = items
	cfg.HTTP.Address = config.LOCALHOST_ADDRESS
	return cfg
}

func TestNewBuildsCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("id\n1\n"), 0644))

	srv, err := New(testConfig(dir, nil), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Catalog().Len())

	status := srv.GetStatus()
	assert.Equal(t, 1, status["resources"])
	assert.NotEmpty(t, status["instance_id"])
}

func TestNewFailsOnEmptyDirectory(t *testing.T) {
	_, err := New(testConfig(t.TempDir(), nil), zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, catalog.ErrEmpty))
}

func TestNewFailsOnMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")
	_, err := New(testConfig(missing, nil), zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, catalog.ErrDataPathMissing))
}

func TestNewFailsWhenExplicitItemsResolveToNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("id\n1\n"), 0644))

	_, err := New(testConfig(dir, []string{"missing.csv"}), zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, catalog.ErrEmpty))
}

func TestNewSkipsUnsupportedEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("id\n1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs\n"), 0644))

	srv, err := New(testConfig(dir, nil), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Catalog().Len())
}
