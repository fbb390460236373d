// Package obo implements a streaming parser for the OBO ontology format.
//
// A parse is a single synchronous pass over the input. Logical lines are
// produced by a byte-oriented scanner that merges backslash continuations,
// then fed to a stanza state machine that routes header and [Term] key/value
// pairs to field decoders. [Typedef] stanzas are scanned but never decoded.
//
// Identifiers and their prefixes are interned, so two references to the same
// term anywhere in a file resolve to the same *TermID and can be compared by
// pointer.
package obo
