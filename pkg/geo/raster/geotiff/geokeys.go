package geotiff

import (
	"encoding/xml"
	"maps"
	"slices"
	"strings"
)

// readGeoKeys interprets the geokey directory into the image's coordinate
// system fields.
func (p *parser) readGeoKeys(img *Image) error {
	entry, ok := p.entries[tagGeoKeyDirectory]
	if !ok {
		return nil
	}

	directory, err := p.uintValues(entry)
	if err != nil {
		return err
	}

	if len(directory) < 4 {
		return nil
	}

	ascii := p.asciiValue(tagGeoAsciiParams)

	var (
		geographicCode int
		projectedCode  int
		citation       string
		pcsCitation    string
	)

	numKeys := int(directory[3])

	for i := 1; i <= numKeys; i++ {
		base := i * 4
		if base+4 > len(directory) {
			break
		}

		id := directory[base]
		location := directory[base+1]
		count := int(directory[base+2])
		value := int(directory[base+3])

		switch id {
		case keyModelType:
			img.ModelType = value
		case keyRasterType:
			img.RasterType = value
		case keyGeographicType:
			geographicCode = value
		case keyProjectedCS:
			projectedCode = value
		case keyCitation:
			citation = asciiParam(ascii, location, value, count)
		case keyPCSCitation:
			pcsCitation = asciiParam(ascii, location, value, count)
		}
	}

	switch img.ModelType {
	case ModelTypeProjected:
		if projectedCode != 0 && projectedCode != userDefined {
			img.EPSG = projectedCode
		}
	case ModelTypeGeographic:
		if geographicCode != 0 && geographicCode != userDefined {
			img.EPSG = geographicCode
		}
	}

	img.Citation = citation
	if img.Citation == "" {
		img.Citation = pcsCitation
	}

	return nil
}

// asciiParam extracts one string from the ascii params blob. GeoTIFF ends
// each value with a "|" in place of NUL.
func asciiParam(blob string, location uint64, offset, count int) string {
	if location != tagGeoAsciiParams || offset < 0 || count <= 0 {
		return ""
	}

	if offset+count > len(blob) {
		return ""
	}

	return strings.TrimRight(blob[offset:offset+count], "|\x00 ")
}

// buildGeoKeys renders the geokey directory and its ascii params. The
// directory is nil when the image carries no coordinate system.
func buildGeoKeys(img *Image) ([]uint16, string) {
	if img.ModelType == 0 && img.EPSG == 0 && img.Citation == "" {
		return nil, ""
	}

	rasterType := img.RasterType
	if rasterType == 0 {
		rasterType = RasterTypePixelIsArea
	}

	type geoKey struct {
		id, location, count, value uint16
	}

	keys := []geoKey{
		{id: keyRasterType, value: uint16(rasterType)},
	}

	if img.ModelType != 0 {
		keys = append(keys, geoKey{id: keyModelType, value: uint16(img.ModelType)})
	}

	ascii := ""
	if img.Citation != "" {
		keys = append(keys, geoKey{
			id:       keyCitation,
			location: tagGeoAsciiParams,
			count:    uint16(len(img.Citation) + 1),
		})
		ascii = img.Citation + "|"
	}

	if img.ModelType != 0 {
		codeKey := uint16(keyProjectedCS)
		if img.ModelType == ModelTypeGeographic {
			codeKey = keyGeographicType
		}

		code := uint16(userDefined)
		if img.EPSG > 0 && img.EPSG < 65536 && img.EPSG != userDefined {
			code = uint16(img.EPSG)
		}

		keys = append(keys, geoKey{id: codeKey, value: code})
	}

	slices.SortFunc(keys, func(a, b geoKey) int {
		return int(a.id) - int(b.id)
	})

	directory := make([]uint16, 0, 4*(len(keys)+1))
	directory = append(directory, 1, 1, 0, uint16(len(keys)))

	for _, key := range keys {
		directory = append(directory, key.id, key.location, key.count, key.value)
	}

	return directory, ascii
}

// gdalMetadataDoc mirrors the XML packet GDAL stores in its metadata tag.
type gdalMetadataDoc struct {
	XMLName xml.Name           `xml:"GDALMetadata"`
	Items   []gdalMetadataItem `xml:"Item"`
}

type gdalMetadataItem struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// parseGDALMetadata reads the metadata packet, returning nil on malformed
// input rather than failing the whole decode.
func parseGDALMetadata(text string) map[string]string {
	var doc gdalMetadataDoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}

	if len(doc.Items) == 0 {
		return nil
	}

	items := make(map[string]string, len(doc.Items))
	for _, item := range doc.Items {
		items[item.Name] = strings.TrimSpace(item.Value)
	}

	return items
}

// formatGDALMetadata renders the metadata packet with items in name order.
func formatGDALMetadata(items map[string]string) string {
	doc := gdalMetadataDoc{}

	for _, name := range slices.Sorted(maps.Keys(items)) {
		doc.Items = append(doc.Items, gdalMetadataItem{Name: name, Value: items[name]})
	}

	rendered, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ""
	}

	return string(rendered)
}
