package v1alpha1

import (
	"fmt"

	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
)

// Validate checks the project configuration and returns the problems that
// must stop a command, plus advisory warnings that should be surfaced but
// not block execution.
func (p *Project) Validate() ([]error, []string) {
	var errs []error

	var warnings []string

	if p.APIVersion != APIVersion {
		errs = append(errs, fmt.Errorf("%w: %q (expected %s)", ErrInvalidAPIVersion, p.APIVersion, APIVersion))
	}

	if p.Kind != Kind {
		errs = append(errs, fmt.Errorf("%w: %q (expected %s)", ErrInvalidKind, p.Kind, Kind))
	}

	if p.Spec.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidWorkers, p.Spec.Workers))
	}

	errs = append(errs, validateSpecEnums(&p.Spec)...)
	warnings = append(warnings, specWarnings(&p.Spec)...)

	return errs, warnings
}

func validateSpecEnums(spec *Spec) []error {
	var errs []error

	if spec.DType != "" {
		if _, err := raster.ParseDType(string(spec.DType)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDType, spec.DType))
		}
	}

	if spec.Resample != "" {
		if _, err := warp.ParseResample(string(spec.Resample)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidResample, spec.Resample))
		}
	}

	if spec.Compress != "" {
		if _, err := raster.ParseCompression(string(spec.Compress)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCompress, spec.Compress))
		}
	}

	return errs
}

func specWarnings(spec *Spec) []string {
	var warnings []string

	if spec.DType.IsComplex() {
		warnings = append(warnings,
			fmt.Sprintf("cell type '%s' holds complex samples and cannot be written to GeoTIFF outputs", spec.DType))
	}

	if _, err := raster.ParseCompression(string(spec.Compress)); err == nil && !spec.Compress.Supported() {
		warnings = append(warnings,
			fmt.Sprintf("compression '%s' is recognized but not writable, outputs will require NONE or DEFLATE", spec.Compress))
	}

	return warnings
}
