package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-server/internal/logger"
	"github.com/Zachkp/portfolio-server/internal/store"
)

const sampleYAML = `
services:
  - name: Logo Design
    price: 600
    description: Vector logos with a small brand sheet.
portfolio:
  - title: Bakery Site
    description: Menu and ordering page.
    media: /images/bakery.png
  - title: Band Poster
    media: /images/poster.jpg
`

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, d.Services, 1)
	assert.Equal(t, "Logo Design", d.Services[0].Name)
	assert.Equal(t, 600.0, d.Services[0].Price)
	require.Len(t, d.Portfolio, 2)
	assert.Equal(t, "/images/poster.jpg", d.Portfolio[1].Media)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("services:\n  - name: x\n    cost: 3\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	d, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, d.Services)
	assert.Empty(t, d.Portfolio)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	d, err := Load(path)
	require.NoError(t, err)

	s := openStore(t)
	res, err := Apply(context.Background(), s, d, false, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Services)
	assert.Equal(t, 2, res.Portfolio)
	assert.Empty(t, res.Skipped)

	items, err := s.Portfolio.FindAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bakery Site", items[0].Title)
	assert.NotEmpty(t, items[0].ID)
}

func TestApplySkipsSeededCollections(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := Apply(ctx, s, Default(), false, logger.Discard())
	require.NoError(t, err)

	res, err := Apply(ctx, s, Default(), false, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Services)
	assert.Equal(t, []string{"services", "portfolio"}, res.Skipped)

	n, err := s.Services.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(Default().Services)), n)

	res, err = Apply(ctx, s, Default(), true, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, len(Default().Services), res.Services)

	n, err = s.Services.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2*len(Default().Services)), n)
}
