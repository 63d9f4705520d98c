// Package timer provides wall-clock timing for staged CLI activities.
package timer

import (
	"sync"
	"time"
)

// Timer tracks the total runtime of an activity and the runtime of its
// current stage.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()

	// NewStage marks the beginning of a new stage.
	NewStage()

	// GetTiming returns the elapsed time since Start and the elapsed time
	// since the latest NewStage. Before Start both durations are zero.
	GetTiming() (total time.Duration, stage time.Duration)
}

// New creates a Timer backed by the system clock.
func New() Timer {
	return &clockTimer{now: time.Now}
}

type clockTimer struct {
	mu         sync.Mutex
	now        func() time.Time
	start      time.Time
	stageStart time.Time
	running    bool
}

func (t *clockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.stageStart = t.start
	t.running = true
}

func (t *clockTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	t.stageStart = t.now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return 0, 0
	}

	current := t.now()

	return current.Sub(t.start), current.Sub(t.stageStart)
}
