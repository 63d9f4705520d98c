package geotiff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decode reads the first image of a TIFF stream into memory.
func Decode(reader io.Reader) (*Image, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiff stream: %w", err)
	}

	return decode(data)
}

// ifdEntry is one raw directory entry. The value field holds either the
// value itself or the offset to it, depending on the encoded size.
type ifdEntry struct {
	fieldType uint16
	count     uint32
	value     [4]byte
}

// parser holds the full file and its byte order.
type parser struct {
	data    []byte
	order   binary.ByteOrder
	entries map[uint16]ifdEntry
}

func decode(data []byte) (*Image, error) {
	parsed, err := newParser(data)
	if err != nil {
		return nil, err
	}

	if err := parsed.checkLayout(); err != nil {
		return nil, err
	}

	width := int(parsed.uintOr(tagImageWidth, 0))
	height := int(parsed.uintOr(tagImageLength, 0))

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: ImageWidth and ImageLength", ErrMissingTag)
	}

	bits := int(parsed.uintOr(tagBitsPerSample, 0))
	if bits == 0 {
		return nil, fmt.Errorf("%w: BitsPerSample", ErrMissingTag)
	}

	format := SampleFormat(parsed.uintOr(tagSampleFormat, uint64(SampleFormatUint)))
	if err := validateSampleType(format, bits); err != nil {
		return nil, err
	}

	deflate, err := parsed.compression()
	if err != nil {
		return nil, err
	}

	img := &Image{
		Width:         width,
		Height:        height,
		BitsPerSample: bits,
		SampleFormat:  format,
		Deflate:       deflate,
	}

	if err := parsed.readStrips(img); err != nil {
		return nil, err
	}

	parsed.readGeoreference(img)

	if err := parsed.readGeoKeys(img); err != nil {
		return nil, err
	}

	parsed.readGDALTags(img)

	return img, nil
}

// newParser validates the header and loads the first directory.
func newParser(data []byte) (*parser, error) {
	if len(data) < 8 {
		return nil, ErrNotTIFF
	}

	var order binary.ByteOrder

	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, ErrNotTIFF
	}

	if order.Uint16(data[2:4]) != 42 {
		return nil, ErrNotTIFF
	}

	parsed := &parser{data: data, order: order, entries: map[uint16]ifdEntry{}}

	ifdOffset := int64(order.Uint32(data[4:8]))
	if ifdOffset+2 > int64(len(data)) {
		return nil, ErrTruncated
	}

	count := int64(order.Uint16(data[ifdOffset : ifdOffset+2]))
	if ifdOffset+2+count*12 > int64(len(data)) {
		return nil, ErrTruncated
	}

	for i := int64(0); i < count; i++ {
		raw := data[ifdOffset+2+i*12:]
		entry := ifdEntry{
			fieldType: order.Uint16(raw[2:4]),
			count:     order.Uint32(raw[4:8]),
		}
		copy(entry.value[:], raw[8:12])
		parsed.entries[order.Uint16(raw[0:2])] = entry
	}

	return parsed, nil
}

// checkLayout rejects organizations outside the strip based subset.
func (p *parser) checkLayout() error {
	if _, ok := p.entries[tagTileWidth]; ok {
		return fmt.Errorf("%w: tiled images", ErrUnsupportedLayout)
	}

	if samples := p.uintOr(tagSamplesPerPixel, 1); samples != 1 {
		return fmt.Errorf("%w: %d samples per pixel (only single band images are handled)",
			ErrUnsupportedLayout, samples)
	}

	if planar := p.uintOr(tagPlanarConfig, 1); planar != 1 {
		return fmt.Errorf("%w: planar configuration %d", ErrUnsupportedLayout, planar)
	}

	if predictor := p.uintOr(tagPredictor, 1); predictor != 1 {
		return fmt.Errorf("%w: predictor %d", ErrUnsupportedLayout, predictor)
	}

	return nil
}

// compression maps the compression tag onto the codec's subset.
func (p *parser) compression() (bool, error) {
	switch code := p.uintOr(tagCompression, compressionNone); code {
	case compressionNone:
		return false, nil
	case compressionDeflate, compressionDeflateOld:
		return true, nil
	case compressionLZW:
		return false, fmt.Errorf("%w: LZW", ErrUnsupportedCompression)
	case compressionJPEG:
		return false, fmt.Errorf("%w: JPEG", ErrUnsupportedCompression)
	default:
		return false, fmt.Errorf("%w: code %d", ErrUnsupportedCompression, code)
	}
}

// typeSize returns the byte width of a TIFF field type, zero when unknown.
func typeSize(fieldType uint16) int {
	switch fieldType {
	case typeByte, typeASCII:
		return 1
	case typeShort:
		return 2
	case typeLong:
		return 4
	case typeDouble:
		return 8
	}

	return 0
}

// valueBytes resolves an entry to its raw value bytes, following the offset
// for out-of-line values.
func (p *parser) valueBytes(entry ifdEntry) ([]byte, error) {
	size := typeSize(entry.fieldType)
	if size == 0 {
		return nil, fmt.Errorf("%w: unhandled field type %d", ErrUnsupportedLayout, entry.fieldType)
	}

	total := int64(size) * int64(entry.count)
	if total <= 4 {
		return entry.value[:total], nil
	}

	offset := int64(p.order.Uint32(entry.value[:]))
	if offset+total > int64(len(p.data)) {
		return nil, ErrTruncated
	}

	return p.data[offset : offset+total], nil
}

// uintValues decodes an integer valued entry.
func (p *parser) uintValues(entry ifdEntry) ([]uint64, error) {
	raw, err := p.valueBytes(entry)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, entry.count)

	switch entry.fieldType {
	case typeByte:
		for i := range values {
			values[i] = uint64(raw[i])
		}
	case typeShort:
		for i := range values {
			values[i] = uint64(p.order.Uint16(raw[i*2:]))
		}
	case typeLong:
		for i := range values {
			values[i] = uint64(p.order.Uint32(raw[i*4:]))
		}
	default:
		return nil, fmt.Errorf("%w: integer value with field type %d",
			ErrUnsupportedLayout, entry.fieldType)
	}

	return values, nil
}

// uintOr returns the first integer value of a tag, or the fallback when the
// tag is absent or malformed.
func (p *parser) uintOr(tag uint16, fallback uint64) uint64 {
	entry, ok := p.entries[tag]
	if !ok {
		return fallback
	}

	values, err := p.uintValues(entry)
	if err != nil || len(values) == 0 {
		return fallback
	}

	return values[0]
}

// doubleValues decodes a DOUBLE valued entry.
func (p *parser) doubleValues(tag uint16) []float64 {
	entry, ok := p.entries[tag]
	if !ok || entry.fieldType != typeDouble {
		return nil
	}

	raw, err := p.valueBytes(entry)
	if err != nil {
		return nil
	}

	values := make([]float64, entry.count)
	for i := range values {
		values[i] = math.Float64frombits(p.order.Uint64(raw[i*8:]))
	}

	return values
}

// asciiValue decodes an ASCII valued entry with NUL terminators stripped.
func (p *parser) asciiValue(tag uint16) string {
	entry, ok := p.entries[tag]
	if !ok || entry.fieldType != typeASCII {
		return ""
	}

	raw, err := p.valueBytes(entry)
	if err != nil {
		return ""
	}

	return strings.TrimRight(string(raw), "\x00")
}

// readStrips decompresses and decodes the cell data.
func (p *parser) readStrips(img *Image) error {
	offsetsEntry, ok := p.entries[tagStripOffsets]
	if !ok {
		return fmt.Errorf("%w: StripOffsets", ErrMissingTag)
	}

	countsEntry, ok := p.entries[tagStripByteCounts]
	if !ok {
		return fmt.Errorf("%w: StripByteCounts", ErrMissingTag)
	}

	offsets, err := p.uintValues(offsetsEntry)
	if err != nil {
		return err
	}

	counts, err := p.uintValues(countsEntry)
	if err != nil {
		return err
	}

	if len(offsets) != len(counts) {
		return fmt.Errorf("%w: %d strip offsets but %d byte counts",
			ErrUnsupportedLayout, len(offsets), len(counts))
	}

	rowsPerStrip := int(p.uintOr(tagRowsPerStrip, uint64(img.Height)))
	if rowsPerStrip <= 0 {
		rowsPerStrip = img.Height
	}

	sampleWidth := img.sampleBytes()
	img.Data = make([]float64, img.Width*img.Height)

	row := 0

	for i := range offsets {
		if row >= img.Height {
			break
		}

		rows := rowsPerStrip
		if remaining := img.Height - row; rows > remaining {
			rows = remaining
		}

		start := int64(offsets[i])
		end := start + int64(counts[i])

		if end > int64(len(p.data)) {
			return ErrTruncated
		}

		raw := p.data[start:end]

		if img.Deflate {
			raw, err = inflate(raw)
			if err != nil {
				return fmt.Errorf("failed to decompress strip %d: %w", i, err)
			}
		}

		expected := rows * img.Width * sampleWidth
		if len(raw) < expected {
			return ErrTruncated
		}

		decodeSamples(img.Data[row*img.Width:(row+rows)*img.Width], raw[:expected],
			p.order, img.SampleFormat, img.BitsPerSample)

		row += rows
	}

	if row < img.Height {
		return ErrTruncated
	}

	return nil
}

// inflate decompresses one zlib wrapped strip.
func inflate(raw []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// decodeSamples converts raw on-disk samples into float64 cells.
func decodeSamples(dst []float64, raw []byte, order binary.ByteOrder, format SampleFormat, bits int) {
	switch {
	case format == SampleFormatUint && bits == 8:
		for i := range dst {
			dst[i] = float64(raw[i])
		}
	case format == SampleFormatUint && bits == 16:
		for i := range dst {
			dst[i] = float64(order.Uint16(raw[i*2:]))
		}
	case format == SampleFormatInt && bits == 16:
		for i := range dst {
			dst[i] = float64(int16(order.Uint16(raw[i*2:])))
		}
	case format == SampleFormatUint && bits == 32:
		for i := range dst {
			dst[i] = float64(order.Uint32(raw[i*4:]))
		}
	case format == SampleFormatInt && bits == 32:
		for i := range dst {
			dst[i] = float64(int32(order.Uint32(raw[i*4:])))
		}
	case format == SampleFormatFloat && bits == 32:
		for i := range dst {
			dst[i] = float64(math.Float32frombits(order.Uint32(raw[i*4:])))
		}
	case format == SampleFormatFloat && bits == 64:
		for i := range dst {
			dst[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
	}
}

// readGeoreference derives the affine transform from the pixel scale and
// tiepoint pair, falling back to the full transformation matrix.
func (p *parser) readGeoreference(img *Image) {
	scale := p.doubleValues(tagModelPixelScale)
	tiepoint := p.doubleValues(tagModelTiepoint)

	if len(scale) >= 2 && len(tiepoint) >= 6 && scale[0] != 0 && scale[1] != 0 {
		img.Transform = [6]float64{
			tiepoint[3] - tiepoint[0]*scale[0],
			scale[0],
			0,
			tiepoint[4] + tiepoint[1]*scale[1],
			0,
			-scale[1],
		}
		img.HasTransform = true

		return
	}

	if matrix := p.doubleValues(tagModelTransformation); len(matrix) >= 16 {
		img.Transform = [6]float64{matrix[3], matrix[0], matrix[1], matrix[7], matrix[4], matrix[5]}
		img.HasTransform = true
	}
}

// readGDALTags parses the nodata and metadata extension tags.
func (p *parser) readGDALTags(img *Image) {
	if text := strings.TrimSpace(p.asciiValue(tagGDALNoData)); text != "" {
		if value, err := strconv.ParseFloat(text, 64); err == nil {
			img.NoData = &value
		}
	}

	if text := p.asciiValue(tagGDALMetadata); text != "" {
		img.Metadata = parseGDALMetadata(text)
	}
}
