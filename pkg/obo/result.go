package obo

import (
	"fmt"
	"strings"
	"time"
)

// Stats are the running counters of a parse.
type Stats struct {
	// Terms is the number of terms in the result.
	Terms int
	// Relations is the number of parent edges over all accepted records.
	Relations int
	// Stanzas counts every [Term] and [Typedef] header.
	Stanzas int
	// Typedefs counts discarded [Typedef] stanzas.
	Typedefs int
	// Dropped counts term stanzas rejected for lacking an id or a name.
	Dropped int
	// Duplicates counts terms that replaced an earlier term with the same id.
	Duplicates int
	// Skipped counts lines and values that could not be decoded.
	Skipped int
	// Lines is the number of physical lines read.
	Lines int
	// Bytes is the number of raw input bytes consumed.
	Bytes int64
	// Elapsed is the wall time of the pass.
	Elapsed time.Duration
}

// ResultSet is everything one parse produced. It is owned by the caller.
type ResultSet struct {
	// Path is the parsed file, empty when parsing a plain reader.
	Path string
	// Compression names the detected file framing, empty for plain readers.
	Compression string
	// FormatVersion is the format-version header value.
	FormatVersion string
	// Date is the date header value.
	Date string
	// Terms holds every accepted term.
	Terms *TermSet
	// Subsets holds the subsetdef declarations by name.
	Subsets map[string]*Subset
	// Namespaces holds every namespace seen, by name.
	Namespaces map[string]*Namespace
	// Stats are the final counters.
	Stats Stats

	ids *IDPool
}

func newResultSet(path string, ids *IDPool) *ResultSet {
	return &ResultSet{
		Path:       path,
		Terms:      newTermSet(),
		Subsets:    make(map[string]*Subset),
		Namespaces: make(map[string]*Namespace),
		ids:        ids,
	}
}

// TermID returns the interned id with the given text, if the parse saw it.
func (rs *ResultSet) TermID(text string) (*TermID, bool) {
	return rs.ids.Lookup(text)
}

// Term returns the term whose id has the given text.
func (rs *ResultSet) Term(text string) (*Term, bool) {
	id, ok := rs.ids.Lookup(text)
	if !ok {
		return nil, false
	}

	return rs.Terms.Get(id)
}

// Summary returns a human-readable description of the parsed file.
func (rs *ResultSet) Summary() string {
	var diag strings.Builder

	diag.WriteString("Details of parsed obo file:\n")
	fmt.Fprintf(&diag, "  filename:\t\t%s\n", rs.Path)
	fmt.Fprintf(&diag, "  date:\t\t\t%s\n", rs.Date)
	fmt.Fprintf(&diag, "  format:\t\t%s\n", rs.FormatVersion)
	fmt.Fprintf(&diag, "  term definitions:\t%d", rs.Terms.Len())

	return diag.String()
}
