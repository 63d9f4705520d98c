// Package v1alpha1 contains API Schema definitions for the project v1alpha1 API group.
package v1alpha1

import (
	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/gdstools/gdskit/pkg/geo/warp"
)

const (
	// Group is the API group for GDSKit resources.
	Group = "gdskit.dev"

	// Version is the API version for GDSKit resources.
	Version = "v1alpha1"

	// Kind is the resource kind for GDSKit project configurations.
	Kind = "Project"

	// APIVersion is the full API version string for GDSKit resources.
	APIVersion = Group + "/" + Version
)

// Project is the schema for the GDSKit project configuration loaded from
// gdskit.yaml files.
type Project struct {
	// APIVersion is the API version of the project configuration.
	APIVersion string `json:"apiVersion,omitzero"`
	// Kind is the resource kind of the project configuration.
	Kind string `json:"kind,omitzero"`

	// Spec is the specification of the project configuration.
	Spec Spec `json:"spec,omitzero"`
}

// Spec defines workspace-wide defaults that commands fall back to when the
// matching flags are not set.
type Spec struct {
	// DataRoot anchors relative dataset paths. A leading ~/ expands to the
	// user's home directory. Empty leaves paths untouched.
	DataRoot string `json:"dataRoot,omitzero"`

	// NoData is the default marker value for cells that carry no data.
	NoData float64 `json:"noData,omitzero"`

	// DType is the default cell type for produced rasters.
	DType raster.DType `json:"dtype,omitzero"`

	// Resample is the default sampling kernel for reprojection.
	Resample warp.Resample `json:"resample,omitzero"`

	// Compress is the default compression for produced rasters.
	Compress raster.Compression `json:"compress,omitzero"`

	// Workers caps concurrent workers in batch operations. Zero selects a
	// cap based on the CPU count.
	Workers int `json:"workers,omitzero"`

	// Overwrite lets commands replace existing output files.
	Overwrite bool `json:"overwrite,omitzero"`
}
