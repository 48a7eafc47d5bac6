package formula

import (
	"sort"
	"strings"
)

// Canonicalize rewrites s with its elements ordered by (sort key, count)
// ascending. Counts are carried over verbatim and an implicit count of 1
// stays implicit. Equal keys and counts keep their input order, so the
// result is idempotent. Blank input is returned unchanged.
func Canonicalize(s string, keys *SortKeys) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return s
	}
	SortTokens(tokens, keys)

	var b strings.Builder
	b.Grow(len(s))
	for _, tok := range tokens {
		b.WriteString(tok.String())
	}
	return b.String()
}

// SortTokens stable-sorts tokens in place by (sort key, numeric count).
func SortTokens(tokens []Token, keys *SortKeys) {
	sort.SliceStable(tokens, func(i, j int) bool {
		ki, kj := keys.Key(tokens[i].Symbol), keys.Key(tokens[j].Symbol)
		if ki != kj {
			return ki < kj
		}
		return tokens[i].Value() < tokens[j].Value()
	})
}
