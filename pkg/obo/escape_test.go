package obo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

func TestEscape_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		":",
		" \t\n",
		`a:b,c"d\e{f}g[h]i!j`,
		`\\\`,
		"mixed: value, with [brackets] and {braces}!",
	}

	for _, input := range inputs {
		assert.Equal(t, input, obo.Unescape(obo.Escape(input)), "input %q", input)
	}
}

func TestEscape_Encodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\Wb\:c`, obo.Escape("a b:c"))
	assert.Equal(t, `\t\n\\`, obo.Escape("\t\n\\"))
	assert.Equal(t, "plain", obo.Escape("plain"))
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{`no escapes`, "no escapes"},
		{`a\Wb`, "a b"},
		{`tab\there`, "tab\there"},
		{`\!important`, "!important"},
		{`\q`, "q"},
		{`trailing\`, `trailing\`},
		{`\\W`, `\W`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, obo.Unescape(tt.in), "input %q", tt.in)
	}
}
