package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    Parsed
	}{
		{name: "empty", formula: "", want: Parsed{}},
		{name: "whitespace only", formula: "   ", want: Parsed{}},
		{name: "integer counts", formula: "Fe2O3", want: Parsed{"Fe": 2, "O": 3}},
		{name: "implicit counts", formula: "CsCl", want: Parsed{"Cs": 1, "Cl": 1}},
		{name: "fractional counts", formula: "Fe0.5Ni0.5", want: Parsed{"Fe": 0.5, "Ni": 0.5}},
		{name: "repeated symbol keeps last count", formula: "FeOFe3", want: Parsed{"Fe": 3, "O": 1}},
		{name: "lowercase garbage skipped", formula: "xxFe2 (O3)", want: Parsed{"Fe": 2, "O": 3}},
		{name: "no uppercase letters", formula: "abc123", want: Parsed{}},
		{name: "lone decimal point degrades to one", formula: "Fe.", want: Parsed{"Fe": 1}},
		{name: "long lowercase run is one symbol", formula: "Uuo2", want: Parsed{"Uuo": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.formula)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.formula, diff)
			}
		})
	}
}

func TestTokenizeKeepsCountsVerbatim(t *testing.T) {
	got := Tokenize("Al2.50Cu1.")
	want := []Token{{Symbol: "Al", Count: "2.50"}, {Symbol: "Cu", Count: "1."}}
	assert.Equal(t, want, got)

	assert.Equal(t, 2.5, got[0].Value())
	assert.Equal(t, 1.0, got[1].Value())
	assert.Equal(t, "Al2.50", got[0].String())

	assert.Nil(t, Tokenize(""))
}

func TestParsedSymbolsSorted(t *testing.T) {
	assert.Equal(t, []string{"Cu", "Fe", "O"}, Parse("OFeCu").Symbols())
	assert.Empty(t, Parse("").Symbols())
}
