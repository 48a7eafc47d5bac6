package formula

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// tokenPattern matches one element symbol and its optional count.
var tokenPattern = regexp.MustCompile(`([A-Z][a-z]*)(\d*\.?\d*)`)

// Token is one element symbol with its count exactly as written.
// Count is empty when the formula gave no explicit count.
type Token struct {
	Symbol string
	Count  string
}

// Value returns the numeric count. An empty or unparseable count is 1.
func (t Token) Value() float64 {
	if t.Count == "" {
		return 1
	}
	v, err := strconv.ParseFloat(t.Count, 64)
	if err != nil {
		return 1
	}
	return v
}

// String reassembles the token as symbol followed by its verbatim count.
func (t Token) String() string {
	return t.Symbol + t.Count
}

// Tokenize splits s into tokens in input order. Characters that cannot
// start a token are skipped.
func Tokenize(s string) []Token {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	matches := tokenPattern.FindAllStringSubmatch(s, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{Symbol: m[1], Count: m[2]})
	}
	return tokens
}

// Parsed maps element symbols to counts.
type Parsed map[string]float64

// Parse turns s into a symbol to count mapping. A repeated symbol keeps the
// count of its last occurrence. Blank input yields an empty mapping.
func Parse(s string) Parsed {
	tokens := Tokenize(s)
	parsed := make(Parsed, len(tokens))
	for _, tok := range tokens {
		parsed[tok.Symbol] = tok.Value()
	}
	return parsed
}

// Symbols returns the distinct symbols of p in sorted order.
func (p Parsed) Symbols() []string {
	out := make([]string, 0, len(p))
	for sym := range p {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
