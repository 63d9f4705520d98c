package vector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdstools/gdskit/pkg/fsutil"
	"github.com/gdstools/gdskit/pkg/geo/crs"
)

// projectionPath returns the .prj sidecar path for a shapefile.
func projectionPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
}

// ReadProjection loads the coordinate system from the .prj sidecar next to
// a shapefile.
func ReadProjection(path string) (crs.CRS, error) {
	sidecar := projectionPath(path)

	text, err := os.ReadFile(sidecar)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return crs.CRS{}, fmt.Errorf("%w: %s", ErrMissingProjection, sidecar)
		}

		return crs.CRS{}, fmt.Errorf("failed to read %s: %w", sidecar, err)
	}

	system, err := crs.FromWKT(string(text))
	if err != nil {
		return crs.CRS{}, fmt.Errorf("failed to parse %s: %w", sidecar, err)
	}

	return system, nil
}

// WriteProjection stores the system's WKT beside the shapefile, replacing
// any existing sidecar.
func WriteProjection(path string, system crs.CRS) error {
	_, err := fsutil.TryWriteFile(system.ToWKT(), projectionPath(path), true)

	return err
}

// removeLayer deletes a shapefile and its sidecars, ignoring missing ones.
func removeLayer(path string) error {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj"} {
		err := os.Remove(base + ext)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", base+ext, err)
		}
	}

	return nil
}
