package obo

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultProgressInterval is the minimum wall time between two Update calls.
const DefaultProgressInterval = 250 * time.Millisecond

// Observer receives progress of a parse. Calls are made inline from the
// scanning loop, so implementations must return quickly. Progress is best
// effort: an observer that panics is silenced for the rest of the parse.
type Observer interface {
	// Init is called once before scanning with the input size in bytes,
	// or 0 when the size is unknown.
	Init(totalBytes int64)
	// Update reports consumed input bytes and terms accepted so far. The last
	// call after a successful pass carries the final values.
	Update(bytes int64, terms int)
}

// progressReporter throttles Update calls. A nil reporter is a no-op.
type progressReporter struct {
	observer  Observer
	sometimes rate.Sometimes
	offset    func() int64
	terms     func() int
	broken    bool
}

func newProgressReporter(observer Observer, interval time.Duration, offset func() int64, terms func() int) *progressReporter {
	if observer == nil {
		return nil
	}

	reporter := &progressReporter{observer: observer, offset: offset, terms: terms}
	if interval > 0 {
		reporter.sometimes.Interval = interval
	} else {
		reporter.sometimes.Every = 1
	}

	return reporter
}

// tick reports progress when the interval has elapsed since the last report.
func (reporter *progressReporter) tick() {
	if reporter == nil {
		return
	}

	reporter.sometimes.Do(func() {
		reporter.call(func() { reporter.observer.Update(reporter.offset(), reporter.terms()) })
	})
}

func (reporter *progressReporter) init(total int64) {
	if reporter == nil {
		return
	}

	reporter.call(func() { reporter.observer.Init(total) })
}

func (reporter *progressReporter) finish(total int64, terms int) {
	if reporter == nil {
		return
	}

	reporter.call(func() { reporter.observer.Update(total, terms) })
}

// call runs fn unless the observer already panicked once.
func (reporter *progressReporter) call(fn func()) {
	if reporter.broken {
		return
	}

	defer func() {
		if recover() != nil {
			reporter.broken = true
		}
	}()

	fn()
}
