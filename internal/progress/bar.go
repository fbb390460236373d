// Package progress renders parse progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/obofang/pkg/units"
)

// Bar characters.
const (
	barFilled = "█"
	barEmpty  = "░"
)

const (
	defaultWidth = 24
	percent      = 100
)

// Bar is an obo.Observer that redraws a single status line in place:
//
//	go.obo [██████████░░░░░░░░░░░░░░]  42%  12 MiB / 29 MiB  18,204 terms
//
// When the total size is unknown the bar is replaced by the bytes read.
type Bar struct {
	mu      sync.Mutex
	out     io.Writer
	label   string
	width   int
	total   int64
	start   time.Time
	last    int
	accent  *color.Color
	dim     *color.Color
	started bool
}

// Options configures a Bar.
type Options struct {
	// Label prefixes the line, usually the file name.
	Label string
	// Width is the number of bar cells; zero uses the default.
	Width int
	// NoColor disables ANSI colors.
	NoColor bool
}

// NewBar creates a Bar writing to out.
func NewBar(out io.Writer, opts Options) *Bar {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	accent := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)

	if opts.NoColor {
		accent.DisableColor()
		dim.DisableColor()
	} else {
		accent.EnableColor()
		dim.EnableColor()
	}

	return &Bar{out: out, label: opts.Label, width: width, accent: accent, dim: dim}
}

// Init records the total input size.
func (b *Bar) Init(totalBytes int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total = totalBytes
	b.start = time.Now()
	b.started = true
}

// Update redraws the status line.
func (b *Bar) Update(bytes int64, terms int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line := b.render(bytes, terms)

	// Pad over leftovers of a longer previous line.
	pad := max(b.last-len(line), 0)
	b.last = len(line)

	fmt.Fprintf(b.out, "\r%s%s", line, strings.Repeat(" ", pad))
}

// Finish ends the status line with a summary of elapsed time and throughput.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}

	elapsed := time.Since(b.start)
	fmt.Fprintf(b.out, "  %s\n", b.dim.Sprintf("%s, %s",
		elapsed.Round(time.Millisecond), units.Throughput(b.total, elapsed)))

	b.started = false
	b.last = 0
}

func (b *Bar) render(bytes int64, terms int) string {
	var sb strings.Builder

	if b.label != "" {
		sb.WriteString(b.label)
		sb.WriteByte(' ')
	}

	if b.total > 0 {
		ratio := min(float64(bytes)/float64(b.total), 1)
		filled := int(ratio * float64(b.width))

		sb.WriteByte('[')
		sb.WriteString(b.accent.Sprint(strings.Repeat(barFilled, filled)))
		sb.WriteString(strings.Repeat(barEmpty, b.width-filled))
		fmt.Fprintf(&sb, "] %3d%%  %s / %s", int(ratio*percent), units.Bytes(bytes), units.Bytes(b.total))
	} else {
		sb.WriteString(units.Bytes(bytes))
	}

	fmt.Fprintf(&sb, "  %s terms", units.Count(terms))

	return sb.String()
}
