package obo

import "strings"

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ParentEdge links a term to one of its parents.
type ParentEdge struct {
	ID       *TermID
	Relation Relation
}

// Xref is a cross-reference into another database.
type Xref struct {
	Database string
	ID       string
}

// Namespace groups terms; one instance exists per distinct name in a parse.
type Namespace struct {
	Name string
}

// Subset is a named term subset declared by a subsetdef header line.
type Subset struct {
	Name        string
	Description string
}

// String returns the subsetdef value encoding: `name "description"`.
func (subset *Subset) String() string {
	if subset.Description == "" {
		return subset.Name
	}

	return subset.Name + ` "` + quoteEscaper.Replace(subset.Description) + `"`
}

// ParseSubset decodes a subsetdef value. The name is the first token; the
// description is the quoted text that follows, if any.
func ParseSubset(value string) *Subset {
	return parseSubset([]byte(value))
}

func parseSubset(value []byte) *Subset {
	value = trimLeftSpace(value)

	nameEnd := indexUnescapedAny(value, " \t")
	if nameEnd < 0 {
		return &Subset{Name: decodeText(value)}
	}

	subset := &Subset{Name: decodeText(value[:nameEnd])}
	if description, ok := quoted(value[nameEnd:]); ok {
		subset.Description = decodeText(description)
	}

	return subset
}

// Term is one ontology concept. Terms are immutable once returned in a
// ResultSet; callers must not modify the slices.
type Term struct {
	ID            *TermID
	Name          string
	Namespace     *Namespace
	Obsolete      bool
	Definition    string
	Parents       []ParentEdge
	Alternatives  []*TermID
	Equivalents   []*TermID
	Synonyms      []string
	Intersections []string
	Subsets       []*Subset
	Xrefs         []Xref
}

// NamespaceName returns the term's namespace name or "" when unset.
func (term *Term) NamespaceName() string {
	if term.Namespace == nil {
		return ""
	}

	return term.Namespace.Name
}

// ParentsOf returns the parent ids connected by the given relation.
func (term *Term) ParentsOf(rel Relation) []*TermID {
	var ids []*TermID

	for _, edge := range term.Parents {
		if edge.Relation == rel {
			ids = append(ids, edge.ID)
		}
	}

	return ids
}

// String returns "<id> <name>".
func (term *Term) String() string {
	var sb strings.Builder

	sb.WriteString(term.ID.String())
	sb.WriteByte(' ')
	sb.WriteString(term.Name)

	return sb.String()
}
