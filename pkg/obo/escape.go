package obo

import (
	"strings"
	"sync"
)

// escapeTable holds both directions of the OBO escape set. decode maps the
// byte after a backslash to its literal; encode is the exact inverse.
type escapeTable struct {
	decode [256]byte
	encode [256]byte
}

var escapes = sync.OnceValue(func() *escapeTable {
	pairs := [...]struct{ code, literal byte }{
		{':', ':'},
		{'W', ' '},
		{'t', '\t'},
		{',', ','},
		{'"', '"'},
		{'n', '\n'},
		{'\\', '\\'},
		{'{', '{'},
		{'}', '}'},
		{'[', '['},
		{']', ']'},
		{'!', '!'},
	}

	table := &escapeTable{}
	for _, pair := range pairs {
		table.decode[pair.code] = pair.literal
		table.encode[pair.literal] = pair.code
	}

	return table
})

// Unescape decodes OBO backslash escapes in s. A backslash before a byte
// outside the escape set yields that byte; a trailing lone backslash is kept.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	return unescapeBytes([]byte(s))
}

func unescapeBytes(b []byte) string {
	table := escapes()

	var out strings.Builder

	out.Grow(len(b))

	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i == len(b)-1 {
			out.WriteByte(c)

			continue
		}

		i++

		if literal := table.decode[b[i]]; literal != 0 {
			out.WriteByte(literal)
		} else {
			out.WriteByte(b[i])
		}
	}

	return out.String()
}

// Escape encodes every byte of s that has an escape code. Unescape(Escape(s))
// returns s.
func Escape(s string) string {
	table := escapes()

	var out strings.Builder

	out.Grow(len(s))

	for i := range len(s) {
		if code := table.encode[s[i]]; code != 0 {
			out.WriteByte('\\')
			out.WriteByte(code)

			continue
		}

		out.WriteByte(s[i])
	}

	return out.String()
}

// decodeText is the general-purpose value decoder used for names, namespaces
// and other free text.
func decodeText(b []byte) string {
	for _, c := range b {
		if c == '\\' {
			return unescapeBytes(b)
		}
	}

	return string(b)
}
