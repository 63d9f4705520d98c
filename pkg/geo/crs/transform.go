package crs

import "fmt"

// Transformer converts coordinates from a source to a destination CRS
// through a geographic pivot. Transforms within the WGS84/GRS80/NAD83
// family ignore the sub-meter datum differences between them.
type Transformer struct {
	src      CRS
	dst      CRS
	srcProj  projection
	dstProj  projection
	identity bool
}

// NewTransformer builds a Transformer between two defined systems.
func NewTransformer(src, dst CRS) (*Transformer, error) {
	if !src.Defined() || !dst.Defined() {
		return nil, ErrUndefinedCRS
	}

	transformer := &Transformer{src: src, dst: dst, identity: src.Equal(dst)}

	if transformer.identity {
		return transformer, nil
	}

	if !src.IsGeographic() {
		proj, err := buildProjection(src.Params())
		if err != nil {
			return nil, fmt.Errorf("failed to build source projection: %w", err)
		}

		transformer.srcProj = proj
	}

	if !dst.IsGeographic() {
		proj, err := buildProjection(dst.Params())
		if err != nil {
			return nil, fmt.Errorf("failed to build destination projection: %w", err)
		}

		transformer.dstProj = proj
	}

	return transformer, nil
}

// Transform converts a coordinate pair. Geographic coordinates are
// longitude/latitude degrees; projected coordinates are meters.
// Out-of-domain inputs yield NaN outputs.
func (t *Transformer) Transform(x, y float64) (float64, float64) {
	if t.identity {
		return x, y
	}

	lon, lat := x*degToRad, y*degToRad
	if t.srcProj != nil {
		lon, lat = t.srcProj.inverse(x, y)
	}

	if t.dstProj != nil {
		return t.dstProj.forward(lon, lat)
	}

	return lon * radToDeg, lat * radToDeg
}

// Src returns the source CRS.
func (t *Transformer) Src() CRS {
	return t.src
}

// Dst returns the destination CRS.
func (t *Transformer) Dst() CRS {
	return t.dst
}
