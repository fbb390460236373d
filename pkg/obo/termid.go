package obo

import (
	"bytes"
	"fmt"
)

// Prefix is the namespace-qualifying part of a TermID, e.g. "GO".
type Prefix struct {
	name string
}

// String returns the prefix text.
func (prefix *Prefix) String() string {
	return prefix.name
}

// TermID identifies a term as a (prefix, local id) pair. TermIDs handed out by
// an IDPool are unique per textual form, so pointer equality is identity.
type TermID struct {
	Prefix *Prefix
	Local  string
	text   string
}

// String returns the canonical "<prefix>:<local>" form.
func (id *TermID) String() string {
	return id.text
}

// MarshalText encodes the id in its canonical form.
func (id *TermID) MarshalText() ([]byte, error) {
	return []byte(id.text), nil
}

// IDPool interns prefixes and full identifiers in two separate pools.
type IDPool struct {
	prefixes *Pool[Prefix]
	ids      *Pool[TermID]
}

// NewIDPool creates an empty IDPool.
func NewIDPool() *IDPool {
	return &IDPool{
		prefixes: NewPool[Prefix](),
		ids:      NewPool[TermID](),
	}
}

// Intern returns the shared TermID for raw, which must have the form
// "<prefix>:<local>" with both parts non-empty.
func (pool *IDPool) Intern(raw []byte) (*TermID, error) {
	colon := bytes.IndexByte(raw, ':')
	if colon <= 0 || colon == len(raw)-1 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedTermID, raw)
	}

	return pool.ids.Intern(raw, func(text string) (*TermID, error) {
		prefix, err := pool.prefixes.Intern(raw[:colon], func(name string) (*Prefix, error) {
			return &Prefix{name: name}, nil
		})
		if err != nil {
			return nil, err
		}

		return &TermID{Prefix: prefix, Local: text[colon+1:], text: text}, nil
	})
}

// InternString is Intern for a string.
func (pool *IDPool) InternString(raw string) (*TermID, error) {
	return pool.Intern([]byte(raw))
}

// Lookup returns the pooled TermID with the given text, if it was ever seen.
func (pool *IDPool) Lookup(text string) (*TermID, bool) {
	return pool.ids.Lookup(text)
}

// Len returns the number of distinct identifiers.
func (pool *IDPool) Len() int {
	return pool.ids.Len()
}

// Prefixes returns the number of distinct prefixes.
func (pool *IDPool) Prefixes() int {
	return pool.prefixes.Len()
}
