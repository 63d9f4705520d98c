// Package progress renders progress output for long-running raster work.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Meter writes the classic gdalwarp progress line ("...10...20...") as a
// fraction advances from 0 to 1. Numbers appear at non-zero multiples of
// ten, dots between them, each mark printed once no matter how often the
// fraction repeats.
type Meter struct {
	mu     sync.Mutex
	writer io.Writer
	last   int
}

// NewMeter creates a Meter writing to the given writer, or os.Stdout when nil.
func NewMeter(writer io.Writer) *Meter {
	if writer == nil {
		writer = os.Stdout
	}

	return &Meter{writer: writer, last: 0}
}

// Update advances the meter to the given completion fraction in [0, 1].
// Fractions below the high-water mark are ignored.
func (m *Meter) Update(complete float64) {
	percent := int(complete * 100)
	if percent > 100 {
		percent = 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for p := m.last + 1; p <= percent; p++ {
		switch p % 10 {
		case 0:
			_, _ = fmt.Fprintf(m.writer, "%d", p)
		case 2, 5, 8:
			_, _ = fmt.Fprint(m.writer, ".")
		}
	}

	if percent > m.last {
		m.last = percent
	}
}

// Finish drives the meter to 100 and terminates the line.
func (m *Meter) Finish() {
	m.Update(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, _ = fmt.Fprintln(m.writer)
}
