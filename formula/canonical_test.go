package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKeys() *SortKeys {
	return NewSortKeys(map[string]float64{"O": 1, "Fe": 2, "Ni": 3, "Cu": 4})
}

func TestCanonicalize(t *testing.T) {
	keys := testKeys()

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{name: "reorders by key", formula: "Fe2O3", want: "O3Fe2"},
		{name: "already canonical", formula: "O3Fe2", want: "O3Fe2"},
		{name: "implicit counts stay implicit", formula: "CuNiFe", want: "FeNiCu"},
		{name: "verbatim fractional counts", formula: "Ni0.50Fe0.5", want: "Fe0.5Ni0.50"},
		{name: "unknown elements sort last", formula: "XeCuO", want: "OCuXe"},
		{name: "unknown elements ordered by count", formula: "Xe3Kr2O", want: "OKr2Xe3"},
		{name: "equal key tie broken by count", formula: "Fe3Fe2", want: "Fe2Fe3"},
		{name: "blank returned unchanged", formula: "  ", want: "  "},
		{name: "garbage dropped", formula: "Fe2-O3", want: "O3Fe2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.formula, keys))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	keys := testKeys()
	for _, f := range []string{"Fe2O3", "CuNiFeO4", "Xe3Kr2O", "Ni0.5Fe0.5", "KrXeAr", "Fe2Fe2O"} {
		once := Canonicalize(f, keys)
		assert.Equal(t, once, Canonicalize(once, keys), "formula %q", f)
	}
}

func TestCanonicalizeOrderInvariant(t *testing.T) {
	keys := testKeys()
	permutations := []string{"Fe2O3Ni", "NiFe2O3", "O3NiFe2", "Fe2NiO3"}
	want := Canonicalize(permutations[0], keys)
	for _, p := range permutations[1:] {
		assert.Equal(t, want, Canonicalize(p, keys), "permutation %q", p)
	}
}

func TestCanonicalizeStableForEqualKeys(t *testing.T) {
	// Kr and Xe share no key and equal counts, input order is the tie-break
	assert.Equal(t, "OKrXe", Canonicalize("KrXeO", testKeys()))
	assert.Equal(t, "OXeKr", Canonicalize("XeKrO", testKeys()))
}

func TestSortKeysNil(t *testing.T) {
	var keys *SortKeys
	assert.True(t, math.IsInf(keys.Key("Fe"), 1))
	assert.Equal(t, "Fe2O3", Canonicalize("Fe2O3", nil))
}

func TestSortKeysDropNaN(t *testing.T) {
	keys := NewSortKeys(map[string]float64{"O": 1, "Ni": 3, "Xx": math.NaN()})

	assert.True(t, math.IsInf(keys.Key("Xx"), 1))
	assert.Equal(t, 2, keys.Len())
	for _, f := range []string{"XxNiO", "NiXxO", "OXxNi"} {
		assert.Equal(t, "ONiXx", Canonicalize(f, keys), "input %q", f)
	}
}
