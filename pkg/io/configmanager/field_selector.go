package configmanager

import (
	v1alpha1 "github.com/gdstools/gdskit/pkg/apis/project/v1alpha1"
	"github.com/gdstools/gdskit/pkg/geo/raster"
)

// FieldSelector pairs a pointer into the configuration with the metadata
// used to expose the field as a command flag.
type FieldSelector[T any] struct {
	// Selector returns a pointer to the field inside the configuration.
	Selector func(config *T) any

	// Description documents the field on the generated flag.
	Description string

	// DefaultValue fills the field when neither a config file nor a flag
	// set it. Nil registers the flag without a default.
	DefaultValue any
}

// DataRootFieldSelector selects the directory that anchors relative
// dataset paths.
func DataRootFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(config *v1alpha1.Project) any { return &config.Spec.DataRoot },
		Description:  "Directory that anchors relative dataset paths",
		DefaultValue: "",
	}
}

// NoDataFieldSelector selects the default marker for cells without data.
func NoDataFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(config *v1alpha1.Project) any { return &config.Spec.NoData },
		Description:  "Marker value for cells without data",
		DefaultValue: raster.DefaultNoData,
	}
}

// DTypeFieldSelector selects the default cell type for produced rasters.
// No default is applied so outputs keep the source's cell type.
func DTypeFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:    func(config *v1alpha1.Project) any { return &config.Spec.DType },
		Description: "Cell type for produced rasters (defaults to the source's)",
	}
}

// ResampleFieldSelector selects the default sampling kernel. No default is
// applied so only explicit choices count as warp options.
func ResampleFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:    func(config *v1alpha1.Project) any { return &config.Spec.Resample },
		Description: "Resampling method for reprojection (near, bilinear)",
	}
}

// CompressFieldSelector selects the default compression for produced
// rasters.
func CompressFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(config *v1alpha1.Project) any { return &config.Spec.Compress },
		Description:  "Compression for produced rasters (NONE, DEFLATE)",
		DefaultValue: raster.CompressionNone,
	}
}

// WorkersFieldSelector selects the worker cap for batch operations.
func WorkersFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(config *v1alpha1.Project) any { return &config.Spec.Workers },
		Description:  "Concurrent workers for batch operations (0 selects from the CPU count)",
		DefaultValue: 0,
	}
}

// OverwriteFieldSelector selects the default for replacing existing output
// files.
func OverwriteFieldSelector() FieldSelector[v1alpha1.Project] {
	return FieldSelector[v1alpha1.Project]{
		Selector:     func(config *v1alpha1.Project) any { return &config.Spec.Overwrite },
		Description:  "Replace output files that already exist",
		DefaultValue: false,
	}
}

// DefaultProjectFieldSelectors returns the selectors every command shares.
func DefaultProjectFieldSelectors() []FieldSelector[v1alpha1.Project] {
	return []FieldSelector[v1alpha1.Project]{
		DataRootFieldSelector(),
	}
}
