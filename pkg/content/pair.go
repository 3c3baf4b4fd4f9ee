package content

import "github.com/dmitrymomot/folio/pkg/locale"

// Pair holds both locale variants of one slug. Primary is EN, Secondary is FR.
type Pair struct {
	Primary   *Record
	Secondary *Record
}

// Found reports whether at least one side exists.
func (p Pair) Found() bool {
	return p.Primary != nil || p.Secondary != nil
}

// Pick returns the side for l, falling back to the other side when it is missing.
// It returns nil only when the pair is not found.
func (p Pair) Pick(l locale.Locale) *Record {
	want, other := p.Primary, p.Secondary
	if l == locale.FR {
		want, other = p.Secondary, p.Primary
	}
	if want != nil {
		return want
	}
	return other
}

// Has reports whether the side for l exists.
func (p Pair) Has(l locale.Locale) bool {
	if l == locale.FR {
		return p.Secondary != nil
	}
	return p.Primary != nil
}
