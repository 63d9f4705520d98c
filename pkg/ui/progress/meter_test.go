package progress_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gdstools/gdskit/pkg/ui/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterFullRun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	meter := progress.NewMeter(&out)

	for step := 1; step <= 1000; step++ {
		meter.Update(float64(step) / 1000)
	}

	meter.Finish()

	want := "...10...20...30...40...50...60...70...80...90...100\n"
	assert.Equal(t, want, out.String(), "full run should render the gdalwarp line")
}

func TestMeterDoesNotRepeatMarks(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	meter := progress.NewMeter(&out)

	meter.Update(0.5)
	meter.Update(0.5)
	meter.Update(0.5)

	assert.Equal(t, "...10...20...30...40...50", out.String(),
		"repeated fractions must not duplicate marks")
}

func TestMeterIgnoresRegression(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	meter := progress.NewMeter(&out)

	meter.Update(0.3)
	meter.Update(0.1)

	assert.Equal(t, "...10...20...30", out.String(), "fraction going backwards should print nothing")
}

func TestMeterClampsOverflow(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	meter := progress.NewMeter(&out)

	meter.Update(1.5)

	assert.True(t, strings.HasSuffix(out.String(), "100"), "overflow should clamp at 100")
}

func TestGroupRunsAllTasks(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	var (
		mu    sync.Mutex
		names []string
	)

	group := progress.NewGroup("Tiling raster", "🧩", &out, nil)

	tasks := make([]progress.Task, 0, 3)
	for _, name := range []string{"a", "b", "c"} {
		tasks = append(tasks, progress.Task{
			Name: name,
			Fn: func(_ context.Context) error {
				mu.Lock()
				defer mu.Unlock()

				names = append(names, name)

				return nil
			},
		})
	}

	err := group.Run(context.Background(), tasks...)

	require.NoError(t, err, "all tasks succeed")
	assert.Len(t, names, 3, "every task should run")
	assert.Contains(t, out.String(), "tiling raster done (3/3)", "final success line should render")
}

func TestGroupReportsTaskError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	errBroken := errors.New("broken tile")
	group := progress.NewGroup("Tiling raster", "", &out, nil)

	err := group.Run(context.Background(),
		progress.Task{Name: "ok", Fn: func(_ context.Context) error { return nil }},
		progress.Task{Name: "bad", Fn: func(_ context.Context) error { return errBroken }},
	)

	require.Error(t, err, "task failure should surface")
	require.ErrorIs(t, err, errBroken, "original error should be wrapped")
	assert.Contains(t, err.Error(), "bad", "failing task name should be in the error")
}

func TestGroupEmptyTaskListIsNoop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	group := progress.NewGroup("Nothing", "", &out, nil)

	err := group.Run(context.Background())

	require.NoError(t, err, "empty run should succeed")
	assert.Empty(t, out.String(), "empty run should print nothing")
}
