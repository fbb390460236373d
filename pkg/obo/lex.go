package obo

// equalFold reports whether b equals lower under ASCII case folding.
// lower must already be lower case.
func equalFold(b []byte, lower string) bool {
	if len(b) != len(lower) {
		return false
	}

	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}

		if c != lower[i] {
			return false
		}
	}

	return true
}

// foldKey writes the ASCII lower-case form of key into dst. It reports false
// when key does not fit, which no known key does.
func foldKey(dst []byte, key []byte) ([]byte, bool) {
	if len(key) > len(dst) {
		return nil, false
	}

	for i, c := range key {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}

		dst[i] = c
	}

	return dst[:len(key)], true
}

// indexUnescaped returns the index of the first c in b that is not preceded
// by a backslash escape, or -1.
func indexUnescaped(b []byte, c byte) int {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case c:
			return i
		}
	}

	return -1
}

// indexUnescapedAny is indexUnescaped for any byte of set.
func indexUnescapedAny(b []byte, set string) int {
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' {
			i++

			continue
		}

		for j := range len(set) {
			if b[i] == set[j] {
				return i
			}
		}
	}

	return -1
}

// indexComment returns the start of a trailing comment: the first unescaped
// '!' outside a double-quoted run. It returns -1 when there is none.
func indexComment(b []byte) int {
	quoted := false

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			quoted = !quoted
		case '!':
			if !quoted {
				return i
			}
		}
	}

	return -1
}

// skipBlanks returns the index of the first byte at or after from that is
// neither a space nor a tab, or -1.
func skipBlanks(b []byte, from int) int {
	for i := from; i < len(b); i++ {
		if b[i] != ' ' && b[i] != '\t' {
			return i
		}
	}

	return -1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func trimRightSpace(b []byte) []byte {
	end := len(b)
	for end > 0 && isSpace(b[end-1]) {
		end--
	}

	return b[:end]
}

func trimLeftSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}

	return b[start:]
}

// firstToken returns b up to the first unescaped whitespace, '[', '{' or '!'.
func firstToken(b []byte) []byte {
	end := indexUnescapedAny(b, " \t[{!")
	if end < 0 {
		return b
	}

	return b[:end]
}

// quoted returns the bytes strictly between the first and second unescaped
// double quotes of b.
func quoted(b []byte) ([]byte, bool) {
	open := indexUnescaped(b, '"')
	if open < 0 {
		return nil, false
	}

	rest := b[open+1:]

	closing := indexUnescaped(rest, '"')
	if closing < 0 {
		return nil, false
	}

	return rest[:closing], true
}
