package obo

import "strings"

// Flags selects optional decoding behavior. Flags combine with bitwise OR.
type Flags uint8

const (
	// KeepDefinitions decodes def lines into Term.Definition.
	KeepDefinitions Flags = 1 << iota
	// KeepXrefs decodes xref lines into Term.Xrefs.
	KeepXrefs
	// KeepIntersections keeps intersection_of values as raw text.
	KeepIntersections
	// NameFromID seeds each term's name with its id.
	NameFromID
	// IgnoreSynonyms skips synonym lines.
	IgnoreSynonyms
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{KeepDefinitions, "definitions"},
	{KeepXrefs, "xrefs"},
	{KeepIntersections, "intersections"},
	{NameFromID, "name-from-id"},
	{IgnoreSynonyms, "ignore-synonyms"},
}

// Has reports whether every bit of flag is set.
func (flags Flags) Has(flag Flags) bool {
	return flags&flag == flag
}

// String lists the set flags separated by '|'.
func (flags Flags) String() string {
	if flags == 0 {
		return "none"
	}

	names := make([]string, 0, len(flagNames))

	for _, entry := range flagNames {
		if flags.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}

	return strings.Join(names, "|")
}
