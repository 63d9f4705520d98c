package warp_test

import (
	"os"
	"testing"

	"github.com/gdstools/gdskit/pkg/geo/warp"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func TestModules(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"warp", "rasterize"}, warp.Modules())
}

func TestNormalizeModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare", input: "warp", want: "warp"},
		{name: "prefixed", input: "gdalwarp", want: "warp"},
		{name: "underscored", input: "gdal_rasterize", want: "rasterize"},
		{name: "mixed case", input: " GDAL_Warp ", want: "warp"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, warp.NormalizeModule(test.input))
		})
	}
}

func TestModuleOptions(t *testing.T) {
	t.Parallel()

	docs, err := warp.ModuleOptions("gdalwarp")

	require.NoError(t, err)
	assert.Equal(t, "dstSRS", docs[0].Name, "listing order starts with the target system")

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}

	assert.Contains(t, names, "resampleAlg")
	assert.Contains(t, names, "targetAlignedPixels")
	assert.Contains(t, names, "creationOptions")
}

func TestModuleOptionsUnknown(t *testing.T) {
	t.Parallel()

	_, err := warp.ModuleOptions("translate")

	require.ErrorIs(t, err, warp.ErrUnknownModule)
	assert.Contains(t, err.Error(), "available: warp, rasterize", "the error lists the documented modules")
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	listing, err := warp.Describe("warp")

	require.NoError(t, err)
	assert.Contains(t, listing,
		"  dstSRS               srs       output coordinate system, an EPSG reference or proj4 string\n",
		"columns align across the listing")
	assert.Contains(t, listing, "resampleAlg")
}

// Option listings are user-facing reference output, so lock the full
// rendering per module.
func TestDescribeSnapshots(t *testing.T) {
	t.Parallel()

	for _, module := range warp.Modules() {
		t.Run(module, func(t *testing.T) {
			t.Parallel()

			listing, err := warp.Describe(module)

			require.NoError(t, err)
			snaps.MatchSnapshot(t, listing)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		module  string
		pairs   map[string]string
		wantErr error
		inError string
	}{
		{
			name:   "valid warp pairs",
			module: "warp",
			pairs: map[string]string{
				"dstSRS":              "EPSG:3857",
				"xRes":                "30",
				"outputBounds":        "0,0,10,10",
				"targetAlignedPixels": "true",
				"resampleAlg":         "bilinear",
				"outputType":          "Int16",
			},
		},
		{
			name:   "valid rasterize pairs",
			module: "rasterize",
			pairs: map[string]string{
				"attribute":  "class",
				"width":      "256",
				"allTouched": "false",
			},
		},
		{
			name:    "unknown option",
			module:  "warp",
			pairs:   map[string]string{"cutline": "border.shp"},
			wantErr: warp.ErrUnknownOption,
			inError: "cutline",
		},
		{
			name:    "malformed float",
			module:  "warp",
			pairs:   map[string]string{"xRes": "wide"},
			wantErr: warp.ErrUnknownOption,
			inError: "xRes",
		},
		{
			name:    "short bounds",
			module:  "warp",
			pairs:   map[string]string{"outputBounds": "0,0,10"},
			wantErr: warp.ErrUnknownOption,
			inError: "outputBounds",
		},
		{
			name:    "unknown cell type",
			module:  "warp",
			pairs:   map[string]string{"outputType": "Float128"},
			wantErr: warp.ErrUnknownOption,
			inError: "outputType",
		},
		{
			name:    "unknown kernel",
			module:  "warp",
			pairs:   map[string]string{"resampleAlg": "cubic"},
			wantErr: warp.ErrUnknownOption,
			inError: "resampleAlg",
		},
		{
			name:    "unknown module",
			module:  "polygonize",
			pairs:   map[string]string{"attribute": "class"},
			wantErr: warp.ErrUnknownModule,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := warp.Validate(test.module, test.pairs)

			if test.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, test.wantErr)

			if test.inError != "" {
				assert.Contains(t, err.Error(), test.inError, "the offending option is named")
			}
		})
	}
}
