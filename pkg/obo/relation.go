package obo

// Relation is the semantic kind of a parent edge.
type Relation uint8

// Relation kinds. Unrecognized relationship tokens decode to RelationUnknown.
const (
	RelationIsA Relation = iota
	RelationPartOf
	RelationRegulates
	RelationPositivelyRegulates
	RelationNegativelyRegulates
	RelationUnknown
)

var relationNames = [...]string{
	RelationIsA:                 "is_a",
	RelationPartOf:              "part_of",
	RelationRegulates:           "regulates",
	RelationPositivelyRegulates: "positively_regulates",
	RelationNegativelyRegulates: "negatively_regulates",
	RelationUnknown:             "unknown",
}

// String returns the OBO token of the relation.
func (rel Relation) String() string {
	if int(rel) < len(relationNames) {
		return relationNames[rel]
	}

	return relationNames[RelationUnknown]
}

// MarshalText encodes the relation as its OBO token.
func (rel Relation) MarshalText() ([]byte, error) {
	return []byte(rel.String()), nil
}

// ParseRelation maps a relationship token to its kind, ignoring ASCII case.
func ParseRelation(token string) Relation {
	return relationFromToken([]byte(token))
}

func relationFromToken(token []byte) Relation {
	// is_a is never valid inside a relationship line.
	for rel := RelationPartOf; rel < RelationUnknown; rel++ {
		if equalFold(token, relationNames[rel]) {
			return rel
		}
	}

	return RelationUnknown
}
