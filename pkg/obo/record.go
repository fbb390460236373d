package obo

// record accumulates the fields of the stanza being parsed. It is owned by
// the stanza parser and reset after every boundary.
type record struct {
	id            *TermID
	name          string
	hasName       bool
	namespace     *Namespace
	definition    string
	obsolete      bool
	parents       []ParentEdge
	alternatives  []*TermID
	equivalents   []*TermID
	synonyms      []string
	intersections []string
	subsets       []*Subset
	xrefs         []Xref
}

func (rec *record) setName(name string) {
	rec.name = name
	rec.hasName = true
}

// term builds an immutable Term. The slices are moved into the term, so the
// record must be reset afterwards.
func (rec *record) term() *Term {
	return &Term{
		ID:            rec.id,
		Name:          rec.name,
		Namespace:     rec.namespace,
		Obsolete:      rec.obsolete,
		Definition:    rec.definition,
		Parents:       rec.parents,
		Alternatives:  rec.alternatives,
		Equivalents:   rec.equivalents,
		Synonyms:      rec.synonyms,
		Intersections: rec.intersections,
		Subsets:       rec.subsets,
		Xrefs:         rec.xrefs,
	}
}

func (rec *record) reset() {
	*rec = record{}
}
