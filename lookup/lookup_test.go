package lookup

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/stoich/errors"
	"github.com/teranos/stoich/formula"
	"github.com/teranos/stoich/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type fakePrompter struct {
	choice string
	asked  []string
}

func (f *fakePrompter) SelectSheet(source string, sheets []string) (string, error) {
	f.asked = sheets
	return f.choice, nil
}

func TestRegistry(t *testing.T) {
	path := writeFile(t, t.TempDir(), "elements.csv", "H\n He \n\nFe\nO\n")
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	registry, err := loader.Registry(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Fe", "H", "He", "O"}, registry.Symbols())
}

func TestRegistryEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "elements.csv", "\n\n")
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	_, err := loader.Registry(context.Background(), path, "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestRegistryMissingFile(t *testing.T) {
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	_, err := loader.Registry(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)
}

func TestSortKeys(t *testing.T) {
	content := "Element,Mendeleev,Radius\n" +
		"O,87,0.6\n" +
		"Fe,55,1.2\n" +
		"Xx,n/a,1.0\n" +
		"Fe,56,1.3\n"
	path := writeFile(t, t.TempDir(), "element_Mendeleev_numbers.csv", content)
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	keys, err := loader.SortKeys(context.Background(), path, "", 1)
	require.NoError(t, err)

	assert.Equal(t, 87.0, keys.Key("O"))
	assert.Equal(t, 56.0, keys.Key("Fe"), "last row wins")
	assert.True(t, math.IsInf(keys.Key("Xx"), 1), "non-numeric key sorts last")
	assert.Equal(t, 2, keys.Len())

	radius, err := loader.SortKeys(context.Background(), path, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 0.6, radius.Key("O"))
}

func TestSortKeysNaNSortsLast(t *testing.T) {
	path := writeFile(t, t.TempDir(), "keys.csv", "Symbol,Key\nO,1\nFe,2\nXx,NaN\nNi,3\nYy,nan\n")
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	keys, err := loader.SortKeys(context.Background(), path, "", 1)
	require.NoError(t, err)

	assert.True(t, math.IsInf(keys.Key("Xx"), 1))
	assert.True(t, math.IsInf(keys.Key("Yy"), 1))
	assert.Equal(t, 3, keys.Len())

	for _, f := range []string{"XxNiO", "NiXxO", "OXxNi", "XxONi", "NiOXx", "ONiXx"} {
		assert.Equal(t, "ONiXx", formula.Canonicalize(f, keys), "input %q", f)
	}
}

func TestSortKeysColumnOutOfRange(t *testing.T) {
	path := writeFile(t, t.TempDir(), "keys.csv", "Element,Mendeleev\nO,87\n")
	loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())

	for _, col := range []int{0, 2} {
		_, err := loader.SortKeys(context.Background(), path, "", col)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidRequestError(err))
	}
}

func multiSheetWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "periodic_table.xlsx")
	wb := &table.Workbook{Sheets: []*table.Table{
		{Name: "all", Rows: [][]string{{"H"}, {"He"}, {"Fe"}}},
		{Name: "metals", Rows: [][]string{{"Fe"}, {"Ni"}}},
	}}
	require.NoError(t, table.WriteFile(context.Background(), path, wb))
	return path
}

func TestRegistrySheetSelection(t *testing.T) {
	path := multiSheetWorkbook(t)
	ctx := context.Background()

	t.Run("configured sheet", func(t *testing.T) {
		loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())
		registry, err := loader.Registry(ctx, path, "metals")
		require.NoError(t, err)
		assert.Equal(t, []string{"Fe", "Ni"}, registry.Symbols())
	})

	t.Run("no prompter fails with hint", func(t *testing.T) {
		loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())
		_, err := loader.Registry(ctx, path, "")
		require.Error(t, err)
		assert.True(t, errors.IsMissingSheet(err))
		assert.Contains(t, errors.FlattenHints(err), "all, metals")
	})

	t.Run("prompter chooses", func(t *testing.T) {
		prompter := &fakePrompter{choice: "all"}
		loader := NewLoader(prompter, zaptest.NewLogger(t).Sugar())
		registry, err := loader.Registry(ctx, path, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"all", "metals"}, prompter.asked)
		assert.Equal(t, 3, registry.Len())
	})

	t.Run("unknown configured sheet", func(t *testing.T) {
		loader := NewLoader(nil, zaptest.NewLogger(t).Sugar())
		_, err := loader.Registry(ctx, path, "gases")
		assert.True(t, errors.IsMissingSheet(err))
	})
}

func TestResolveRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tables/elements.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Fe\nO\n"))
	}))
	defer srv.Close()

	log := zaptest.NewLogger(t).Sugar()
	src, err := Resolve(context.Background(), srv.URL+"/tables/elements.csv", log)
	require.NoError(t, err)

	assert.True(t, src.Remote)
	assert.Equal(t, "elements.csv", filepath.Base(src.Path))
	data, err := os.ReadFile(src.Path)
	require.NoError(t, err)
	assert.Equal(t, "Fe\nO\n", string(data))

	src.Close()
	_, err = os.Stat(src.Path)
	assert.True(t, os.IsNotExist(err), "temp download removed on Close")
	src.Close()
}

func TestResolveLocal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "elements.csv", "Fe\n")
	src, err := Resolve(context.Background(), path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer src.Close()

	assert.False(t, src.Remote)
	assert.Equal(t, path, src.Path)

	_, err = Resolve(context.Background(), "", zaptest.NewLogger(t).Sugar())
	assert.Error(t, err)
}

func TestRemoteFileName(t *testing.T) {
	assert.Equal(t, "keys.xlsx", remoteFileName("https://example.com/data/keys.xlsx?raw=1"))
	assert.Equal(t, "keys.csv", remoteFileName("s3::https://s3.amazonaws.com/bucket/keys.csv"))
	assert.Equal(t, "table.csv", remoteFileName("https://example.com/"))
}
