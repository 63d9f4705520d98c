package warp

import (
	"fmt"

	"github.com/gdstools/gdskit/pkg/geo/raster"
	"github.com/jinzhu/copier"
)

// TemplateOptions lifts the target geometry from an existing raster: its
// coordinate system, extent, resolution, and cell type.
func TemplateOptions(path string) (Options, error) {
	dataset, err := raster.Read(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read template: %w", err)
	}

	xmin, ymin, xmax, ymax := dataset.Transform.Bounds(dataset.Grid.Width, dataset.Grid.Height)

	opts := Options{
		Bounds: [4]float64{xmin, ymin, xmax, ymax},
		XRes:   dataset.Transform.XRes(),
		YRes:   dataset.Transform.YRes(),
		DType:  dataset.DType,
	}

	if dataset.CRS.Defined() {
		opts.DstSRS = dataset.CRS.Proj4()
	}

	return opts, nil
}

// ApplyTemplate folds template-derived values over the explicit options.
// The template wins for the fields it carries.
func ApplyTemplate(opts, template Options) (Options, error) {
	merged := opts

	err := copier.CopyWithOption(&merged, &template, copier.Option{IgnoreEmpty: true})
	if err != nil {
		return Options{}, fmt.Errorf("failed to merge template options: %w", err)
	}

	return merged, nil
}
