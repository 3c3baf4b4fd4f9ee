package content

// Range selects records [Start, End] from a sorted listing, 1-based and inclusive.
// End of zero means "to the end of the listing".
type Range struct {
	Start int
	End   int
}

// NewRange returns a range; pass end 0 for an open range.
func NewRange(start, end int) *Range {
	return &Range{Start: start, End: end}
}

// apply slices records. Out-of-bounds or inverted ranges yield an empty result.
func (r *Range) apply(records []Record) []Record {
	if r == nil {
		return records
	}
	n := len(records)
	if r.Start < 1 || r.Start > n {
		return []Record{}
	}
	end := n
	if r.End > 0 {
		if r.End < r.Start {
			return []Record{}
		}
		end = min(r.End, n)
	} else if r.End < 0 {
		return []Record{}
	}
	return records[r.Start-1 : end]
}
