package options

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runtime "github.com/gdstools/gdskit/pkg/di"
	"github.com/gdstools/gdskit/pkg/geo/warp"
)

func runCommand(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	var buffer bytes.Buffer

	cmd.SetOut(&buffer)
	cmd.SetErr(&buffer)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buffer.String(), err
}

func TestNewOptionsCmd(t *testing.T) {
	t.Parallel()

	cmd := NewOptionsCmd(runtime.NewRuntime())

	assert.Equal(t, "options [MODULE]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("check"))
}

func TestOptionsCmdListsModules(t *testing.T) {
	t.Parallel()

	output, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{})

	require.NoError(t, err)
	assert.Equal(t, "Available modules:\n  warp\n  rasterize\n", output)
}

func TestOptionsCmdDescribesModule(t *testing.T) {
	t.Parallel()

	output, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{"warp"})

	require.NoError(t, err)
	assert.Contains(t, output, "Options for warp:")
	assert.Contains(t, output, "dstSRS")
	assert.Contains(t, output, "resampleAlg")
	assert.Contains(t, output, "targetAlignedPixels")
}

func TestOptionsCmdNormalizesModuleName(t *testing.T) {
	t.Parallel()

	output, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{"GDAL_Rasterize"})

	require.NoError(t, err)
	assert.Contains(t, output, "Options for rasterize:")
	assert.Contains(t, output, "allTouched")
}

func TestOptionsCmdUnknownModule(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{"translate"})

	require.ErrorIs(t, err, warp.ErrUnknownModule)
	assert.ErrorContains(t, err, "available: warp, rasterize")
}

func TestOptionsCmdValidatesChecks(t *testing.T) {
	t.Parallel()

	output, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{
		"warp",
		"--check", "dstSRS=EPSG:4326",
		"--check", "xRes=30",
		"--check", "targetalignedpixels=true",
	})

	require.NoError(t, err, "option names match case-insensitively")
	assert.Contains(t, output, "3 option(s) valid for warp")
}

func TestOptionsCmdRejectsUnknownOption(t *testing.T) {
	t.Parallel()

	output, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{
		"warp", "--check", "cutline=clip.shp",
	})

	require.ErrorIs(t, err, warp.ErrUnknownOption)
	assert.Contains(t, output, "dstSRS", "the listing prints alongside the failure")
}

func TestOptionsCmdRejectsBadValue(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{
		"rasterize", "--check", "width=wide",
	})

	require.ErrorIs(t, err, warp.ErrUnknownOption)
	assert.ErrorContains(t, err, "width")
}

func TestOptionsCmdRejectsMalformedCheck(t *testing.T) {
	t.Parallel()

	_, err := runCommand(t, NewOptionsCmd(runtime.NewRuntime()), []string{
		"warp", "--check", "dstSRS",
	})

	require.ErrorIs(t, err, ErrInvalidCheck)
}

func TestParseChecks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		checks  []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "single pair",
			checks: []string{"xRes=30"},
			want:   map[string]string{"xRes": "30"},
		},
		{
			name:   "spaces trimmed",
			checks: []string{" dstSRS = EPSG:4326 "},
			want:   map[string]string{"dstSRS": "EPSG:4326"},
		},
		{
			name:   "value keeps inner equals",
			checks: []string{"srcSRS=+proj=utm +zone=13"},
			want:   map[string]string{"srcSRS": "+proj=utm +zone=13"},
		},
		{
			name:    "missing equals",
			checks:  []string{"dstSRS"},
			wantErr: true,
		},
		{
			name:    "empty name",
			checks:  []string{"=30"},
			wantErr: true,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			pairs, err := parseChecks(testCase.checks)

			if testCase.wantErr {
				require.ErrorIs(t, err, ErrInvalidCheck)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.want, pairs)
		})
	}
}
