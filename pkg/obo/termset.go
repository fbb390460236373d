package obo

import "iter"

// TermSet is the term collection of a ResultSet, keyed by interned TermID and
// iterated in first-insertion order.
type TermSet struct {
	index map[*TermID]int
	terms []*Term
}

func newTermSet() *TermSet {
	return &TermSet{index: make(map[*TermID]int)}
}

// put stores term, replacing any term with the same id in place. It reports
// whether a replacement happened.
func (set *TermSet) put(term *Term) bool {
	if pos, ok := set.index[term.ID]; ok {
		set.terms[pos] = term

		return true
	}

	set.index[term.ID] = len(set.terms)
	set.terms = append(set.terms, term)

	return false
}

// Get returns the term with the given id.
func (set *TermSet) Get(id *TermID) (*Term, bool) {
	pos, ok := set.index[id]
	if !ok {
		return nil, false
	}

	return set.terms[pos], true
}

// Len returns the number of terms.
func (set *TermSet) Len() int {
	return len(set.terms)
}

// All iterates over the terms in insertion order.
func (set *TermSet) All() iter.Seq[*Term] {
	return func(yield func(*Term) bool) {
		for _, term := range set.terms {
			if !yield(term) {
				return
			}
		}
	}
}
