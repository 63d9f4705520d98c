package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageWriter wraps an io.Writer and separates CLI stages with blank lines.
// A stage begins with a title line (leading emoji, see Titlef); whenever a
// title follows earlier output, a blank line is inserted before it so
// command handlers never track separation state themselves.
type StageWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageWriter wraps the given writer with stage separation.
func NewStageWriter(underlying io.Writer) *StageWriter {
	return &StageWriter{underlying: underlying}
}

// Write implements io.Writer, inserting a blank line before title lines that
// follow earlier output.
func (w *StageWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && startsWithTitleEmoji(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", err)
		}
	}

	written, err := w.underlying.Write(data)
	if written > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return written, fmt.Errorf("failed to write data: %w", err)
	}

	return written, nil
}

// Reset makes the next title render without a leading blank line.
func (w *StageWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.hasWritten = false
}

// startsWithTitleEmoji reports whether data begins with a pictographic title
// emoji. The message symbols (► ✔ ✗ ⚠ ℹ ✚ ⏲) are excluded so only Titlef
// output triggers separation.
func startsWithTitleEmoji(data []byte) bool {
	firstRune, _ := utf8.DecodeRune(data)
	if firstRune == utf8.RuneError {
		return false
	}

	switch firstRune {
	case '►', '✔', '✗', '⚠', 'ℹ', '✚', '⏲':
		return false
	}

	return unicode.Is(unicode.So, firstRune)
}
