package v1alpha1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1alpha1 "github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
	"github.com/gdstools/gdskit/pkg/geo/raster"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(project *v1alpha1.Project)
		wantErr      error
		wantWarnings int
	}{
		{
			name:   "default project is valid",
			mutate: func(*v1alpha1.Project) {},
		},
		{
			name: "populated spec is valid",
			mutate: func(project *v1alpha1.Project) {
				project.Spec = v1alpha1.Spec{
					DataRoot: "~/data",
					NoData:   -9999,
					DType:    raster.DTypeFloat32,
					Resample: "bilinear",
					Compress: raster.CompressionDeflate,
					Workers:  4,
				}
			},
		},
		{
			name: "wrong apiVersion",
			mutate: func(project *v1alpha1.Project) {
				project.APIVersion = "gdskit.dev/v1"
			},
			wantErr: v1alpha1.ErrInvalidAPIVersion,
		},
		{
			name: "wrong kind",
			mutate: func(project *v1alpha1.Project) {
				project.Kind = "Cluster"
			},
			wantErr: v1alpha1.ErrInvalidKind,
		},
		{
			name: "negative workers",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.Workers = -1
			},
			wantErr: v1alpha1.ErrInvalidWorkers,
		},
		{
			name: "unknown cell type",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.DType = "Float99"
			},
			wantErr: v1alpha1.ErrInvalidDType,
		},
		{
			name: "unknown resampling method",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.Resample = "cubic"
			},
			wantErr: v1alpha1.ErrInvalidResample,
		},
		{
			name: "unknown compression",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.Compress = "ZIP"
			},
			wantErr: v1alpha1.ErrInvalidCompress,
		},
		{
			name: "complex cell type warns",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.DType = raster.DTypeCFloat32
			},
			wantWarnings: 1,
		},
		{
			name: "unwritable compression warns",
			mutate: func(project *v1alpha1.Project) {
				project.Spec.Compress = raster.CompressionLZW
			},
			wantWarnings: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			project := v1alpha1.NewProject()
			test.mutate(project)

			errs, warnings := project.Validate()

			if test.wantErr == nil {
				assert.Empty(t, errs, "expected no validation errors")
			} else {
				require.NotEmpty(t, errs, "expected validation errors")
				assert.ErrorIs(t, errs[0], test.wantErr, "unexpected validation error")
			}

			assert.Len(t, warnings, test.wantWarnings, "unexpected warning count")
		})
	}
}
