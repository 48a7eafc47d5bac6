package formula

// Reason explains why a formula was accepted or rejected.
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonEmpty           Reason = "empty"
	ReasonTooManyElements Reason = "too_many_elements"
	ReasonUnknownElement  Reason = "unknown_element"
)

// Policy bounds how many distinct elements a formula may reference.
type Policy struct {
	// MaxElements is the maximum number of distinct elements.
	MaxElements int
	// AllowEmpty accepts formulas that parse to zero elements.
	AllowEmpty bool
}

// Verdict is the outcome of evaluating one parsed formula.
type Verdict struct {
	Reason Reason
	// Symbol is the first unknown symbol for ReasonUnknownElement.
	Symbol string
}

// Accepted reports whether the verdict keeps the row.
func (v Verdict) Accepted() bool { return v.Reason == ReasonOK }

// Evaluate checks p against the policy and registry. The element count is
// checked before registry membership, and unknown symbols are reported in
// sorted order so the verdict does not depend on map iteration.
func (pol Policy) Evaluate(p Parsed, r *Registry) Verdict {
	if len(p) == 0 {
		if pol.AllowEmpty {
			return Verdict{Reason: ReasonOK}
		}
		return Verdict{Reason: ReasonEmpty}
	}
	if len(p) > pol.MaxElements {
		return Verdict{Reason: ReasonTooManyElements}
	}
	for _, sym := range p.Symbols() {
		if !r.Contains(sym) {
			return Verdict{Reason: ReasonUnknownElement, Symbol: sym}
		}
	}
	return Verdict{Reason: ReasonOK}
}

// Accept reports whether p has at least one and at most maxDistinct
// elements, all present in r.
func Accept(p Parsed, r *Registry, maxDistinct int) bool {
	return Policy{MaxElements: maxDistinct}.Evaluate(p, r).Accepted()
}
