package levels

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/levels/formats"
)

func testdataPath() string {
	return filepath.Join("testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := NewLoader(testdataPath(), nil).LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(lvls))
	for i, lvl := range lvls {
		ids[i] = lvl.ID
	}
	// Invalid files are skipped, the duplicate id is dropped, ordering is by id.
	assert.Equal(t, []string{"a-casa", "b-sol"}, ids)
	assert.Equal(t, "Casa", lvls[0].Title, "first file in walk order wins")
}

func TestLoaderMaskLevel(t *testing.T) {
	lvl, err := NewLoader(testdataPath(), nil).LoadByID("a-casa")
	require.NoError(t, err)

	g := lvl.Build()
	assert.Equal(t, 6, g.Size)
	assert.Equal(t, "..RR..\n.RRRR.\nRRRRRR\n.WWWW.\n.WBBW.\n.WBBW.", g.String())
}

func TestLoaderPixelLevel(t *testing.T) {
	lvl, err := NewLoader(testdataPath(), nil).LoadByID("b-sol")
	require.NoError(t, err)

	assert.Equal(t, "....\n.YY.\n.OO.\n....", lvl.Build().String())
}

func TestLoaderMissingID(t *testing.T) {
	_, err := NewLoader(testdataPath(), nil).LoadByID("zzz")
	assert.ErrorContains(t, err, "not found")
}

func TestLoaderMissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope"), nil).LoadAll()
	assert.Error(t, err)
}

func TestLoadFileValidation(t *testing.T) {
	loader := NewLoader(testdataPath(), nil)

	tests := []struct {
		file string
		code string
	}{
		{"bad_color.yaml", "BAD_COLOR"},
		{"too_wide.yaml", "BAD_MASK"},
	}
	for _, tt := range tests {
		_, err := loader.LoadFile(filepath.Join(testdataPath(), tt.file))
		var verr formats.ValidationError
		require.True(t, errors.As(err, &verr), "%s: %v", tt.file, err)
		assert.Equal(t, tt.code, verr.Code, tt.file)
	}
}

func TestParseYAMLValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"no id", "title: x\nsize: 2\nmask: [R]", "MISSING_ID"},
		{"no title", "id: x\nsize: 2\nmask: [R]", "MISSING_TITLE"},
		{"zero size", "id: x\ntitle: x\nsize: 0\nmask: [R]", "BAD_SIZE"},
		{"huge size", "id: x\ntitle: x\nsize: 99\nmask: [R]", "BAD_SIZE"},
		{"empty", "id: x\ntitle: x\nsize: 2", "EMPTY_LEVEL"},
		{"too many rows", "id: x\ntitle: x\nsize: 1\nmask: [R, R]", "BAD_MASK"},
		{"pixel outside", "id: x\ntitle: x\nsize: 2\npixels: [{x: 2, y: 0, c: R}]", "BAD_PIXEL"},
		{"empty pixel color", "id: x\ntitle: x\nsize: 2\npixels: [{x: 0, y: 0, c: '.'}]", "BAD_COLOR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formats.ParseYAML([]byte(tt.doc))
			var verr formats.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestCatalogAppendsLoadedLevels(t *testing.T) {
	c, err := Catalog(testdataPath(), nil)
	require.NoError(t, err)
	require.Equal(t, 7, c.Len())

	def, ok := c.Level(5)
	require.True(t, ok)
	assert.Equal(t, "a-casa", def.ID)

	builtin, err := Catalog("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, builtin.Len())
}
