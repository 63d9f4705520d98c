package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/gdstools/gdskit/pkg/cli/parallel"
	"github.com/gdstools/gdskit/pkg/notify"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// Task is a named unit of work executed by a Group.
type Task struct {
	// Name identifies the task in progress output (e.g., a tile name).
	Name string
	// Fn performs the work. It receives a context for cancellation.
	Fn func(ctx context.Context) error
}

// Group runs tasks in parallel behind a single live progress line showing a
// spinner and a completed/total counter, then prints a final status message.
type Group struct {
	title  string
	emoji  string
	writer io.Writer
	timer  timer.Timer
	limit  int

	mu         sync.Mutex
	done       int
	failed     int
	total      int
	spinnerIdx int
}

//nolint:gochecknoglobals // Frame table is immutable package configuration.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewGroup creates a Group. The emoji defaults to 📦 and the writer to
// os.Stdout. The timer is optional and feeds the final success message.
func NewGroup(title, emoji string, writer io.Writer, tmr timer.Timer) *Group {
	if writer == nil {
		writer = os.Stdout
	}

	if emoji == "" {
		emoji = "📦"
	}

	return &Group{
		title:  title,
		emoji:  emoji,
		writer: writer,
		timer:  tmr,
	}
}

// WithLimit caps how many tasks run at once. Zero applies the executor's
// default concurrency.
func (g *Group) WithLimit(limit int) *Group {
	g.limit = limit

	return g
}

// Run executes all tasks in parallel with live progress updates and returns
// the first task error, if any.
func (g *Group) Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	g.mu.Lock()
	g.total = len(tasks)
	g.done = 0
	g.failed = 0
	g.mu.Unlock()

	if g.timer != nil {
		g.timer.NewStage()
	}

	g.render()

	stopSpinner := make(chan struct{})
	spinnerDone := make(chan struct{})

	go g.spin(stopSpinner, spinnerDone)

	executor := parallel.NewExecutor(int64(g.limit))

	work := make([]parallel.Task, 0, len(tasks))
	for _, task := range tasks {
		work = append(work, func(taskCtx context.Context) error {
			taskErr := task.Fn(taskCtx)

			g.mu.Lock()
			if taskErr != nil {
				g.failed++
			} else {
				g.done++
			}
			g.mu.Unlock()

			if taskErr != nil {
				return fmt.Errorf("%s: %w", task.Name, taskErr)
			}

			return nil
		})
	}

	err := executor.Execute(ctx, work...)

	close(stopSpinner)
	<-spinnerDone

	g.clearLine()
	g.finish(err)

	return err
}

func (g *Group) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.mu.Lock()
			g.spinnerIdx = (g.spinnerIdx + 1) % len(spinnerFrames)
			g.mu.Unlock()
			g.render()
		}
	}
}

func (g *Group) render() {
	g.mu.Lock()
	defer g.mu.Unlock()

	counter := fcolor.New(fcolor.FgCyan).Sprintf("%s %d/%d", spinnerFrames[g.spinnerIdx], g.done, g.total)

	_, _ = fmt.Fprint(g.writer, "\r\033[K")
	_, _ = fmt.Fprintf(g.writer, "%s %s %s", g.emoji, g.title, counter)
}

func (g *Group) clearLine() {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, _ = fmt.Fprint(g.writer, "\r\033[K")
}

func (g *Group) finish(err error) {
	g.mu.Lock()
	done, total := g.done, g.total
	g.mu.Unlock()

	if err != nil {
		notify.Errorf(g.writer, "failed after %d/%d: %v", done, total, err)

		return
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: fmt.Sprintf("%s done (%d/%d)", strings.ToLower(g.title), done, total),
		Timer:   g.timer,
		Writer:  g.writer,
	})
}
