package obo

import (
	"bufio"
	"errors"
	"io"

	"github.com/Sumatoshi-tech/obofang/pkg/units"
)

// readBufferSize is the bufio buffer size. Longer physical lines are
// assembled across several reads.
const readBufferSize = 64 * units.KiB

// Scanner splits OBO input into logical lines. A physical line that ends in
// an unescaped backslash continues on the next one. Blank lines, lines that
// start with '!' and trailing whitespace are dropped.
type Scanner struct {
	reader   *bufio.Reader
	physical []byte
	pending  []byte
	logical  []byte
	lineNum  int
	joining  bool
	progress *progressReporter
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReaderSize(r, readBufferSize)}
}

// LineNum returns the 1-based number of the last physical line read.
func (scanner *Scanner) LineNum() int {
	return scanner.lineNum
}

// Next returns the next logical line. The slice is valid until the following
// call. At end of input it returns io.EOF, after emitting any unfinished
// continuation as a final line.
func (scanner *Scanner) Next() ([]byte, error) {
	for {
		line, err := scanner.readPhysical()
		if err != nil {
			if errors.Is(err, io.EOF) && scanner.joining {
				scanner.joining = false

				if logical := scanner.finish(scanner.pending); logical != nil {
					return logical, nil
				}
			}

			return nil, err
		}

		scanner.lineNum++
		scanner.progress.tick()

		if len(line) == 0 {
			continue
		}

		if endsWithContinuation(line) {
			scanner.pending = append(scanner.pending, line[:len(line)-1]...)
			scanner.joining = true

			continue
		}

		if scanner.joining {
			scanner.pending = append(scanner.pending, line...)
			scanner.joining = false
			line = scanner.pending
		}

		if logical := scanner.finish(line); logical != nil {
			return logical, nil
		}
	}
}

// finish applies comment and whitespace rules to a complete logical line and
// returns nil when the line is to be ignored.
func (scanner *Scanner) finish(line []byte) []byte {
	// pending may be the backing store of line; copy out before reuse.
	scanner.logical = append(scanner.logical[:0], line...)
	scanner.pending = scanner.pending[:0]

	if len(scanner.logical) == 0 || scanner.logical[0] == '!' {
		return nil
	}

	logical := trimRightSpace(scanner.logical)
	if len(logical) == 0 {
		return nil
	}

	return logical
}

// readPhysical returns the next physical line without its terminator.
func (scanner *Scanner) readPhysical() ([]byte, error) {
	scanner.physical = scanner.physical[:0]

	for {
		chunk, err := scanner.reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			scanner.physical = append(scanner.physical, chunk...)

			continue
		}

		if len(scanner.physical) > 0 {
			scanner.physical = append(scanner.physical, chunk...)
			chunk = scanner.physical
		}

		if err != nil && (!errors.Is(err, io.EOF) || len(chunk) == 0) {
			return nil, err
		}

		return trimTerminator(chunk), nil
	}
}

func trimTerminator(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}

	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	return line
}

// endsWithContinuation reports whether line ends in a backslash that is not
// itself escaped, i.e. an odd run of trailing backslashes.
func endsWithContinuation(line []byte) bool {
	run := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		run++
	}

	return run%2 == 1
}
