package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	c, err := StaticSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	custom := &Catalog{Brands: []string{"Tata"}}
	c, err = StaticSource{Catalog: custom}.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, custom, c)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data, err := json.Marshal(Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := FileSource{Path: path}.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FileSource{Path: filepath.Join(dir, "missing.json")}.Load(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"brands": [`), 0o600))
	_, err = FileSource{Path: bad}.Load(context.Background())
	assert.Error(t, err)

	orphan := filepath.Join(dir, "orphan.json")
	require.NoError(t, os.WriteFile(orphan, []byte(`{"brands":["Tata"],"models":{"Kia":["Seltos"]}}`), 0o600))
	_, err = FileSource{Path: orphan}.Load(context.Background())
	assert.ErrorContains(t, err, `unknown brand "Kia"`)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Default().Check())
	assert.Error(t, (&Catalog{}).Check())
	assert.Error(t, (&Catalog{Brands: []string{"Tata"}, Cities: map[string][]string{"Goa": {"Panaji"}}}).Check())
}
