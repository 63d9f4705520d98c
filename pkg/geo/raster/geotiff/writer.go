package geotiff

import (
	"bytes"
	"cmp"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
)

// targetStripBytes sizes strips so compressed files stay seekable without
// producing thousands of tiny strips.
const targetStripBytes = 64 << 10

// Encode writes the image as a little endian, strip organized GeoTIFF.
func Encode(writer io.Writer, img *Image) error {
	if img.Width <= 0 || img.Height <= 0 || len(img.Data) != img.Width*img.Height {
		return ErrDataLength
	}

	if err := validateSampleType(img.SampleFormat, img.BitsPerSample); err != nil {
		return err
	}

	rowsPerStrip, strips, err := buildStrips(img)
	if err != nil {
		return err
	}

	file := assemble(img, rowsPerStrip, strips)

	if _, err := writer.Write(file); err != nil {
		return fmt.Errorf("failed to write tiff stream: %w", err)
	}

	return nil
}

// buildStrips encodes and optionally compresses the cell data.
func buildStrips(img *Image) (int, [][]byte, error) {
	bytesPerRow := img.Width * img.sampleBytes()

	rowsPerStrip := targetStripBytes / bytesPerRow
	if rowsPerStrip < 1 {
		rowsPerStrip = 1
	}

	if rowsPerStrip > img.Height {
		rowsPerStrip = img.Height
	}

	strips := make([][]byte, 0, (img.Height+rowsPerStrip-1)/rowsPerStrip)

	for row := 0; row < img.Height; row += rowsPerStrip {
		rows := rowsPerStrip
		if remaining := img.Height - row; rows > remaining {
			rows = remaining
		}

		raw := make([]byte, rows*bytesPerRow)
		encodeSamples(raw, img.Data[row*img.Width:(row+rows)*img.Width],
			img.SampleFormat, img.BitsPerSample)

		if img.Deflate {
			compressed, err := deflateStrip(raw)
			if err != nil {
				return 0, nil, fmt.Errorf("failed to compress strip at row %d: %w", row, err)
			}

			raw = compressed
		}

		strips = append(strips, raw)
	}

	return rowsPerStrip, strips, nil
}

// deflateStrip wraps one strip in a zlib stream.
func deflateStrip(raw []byte) ([]byte, error) {
	var buf bytes.Buffer

	compressor := zlib.NewWriter(&buf)
	if _, err := compressor.Write(raw); err != nil {
		compressor.Close()

		return nil, err
	}

	if err := compressor.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeSamples converts float64 cells into little endian on-disk samples.
// Integer targets are rounded and clamped to their range.
func encodeSamples(dst []byte, src []float64, format SampleFormat, bits int) {
	le := binary.LittleEndian

	switch {
	case format == SampleFormatUint && bits == 8:
		for i, v := range src {
			dst[i] = byte(clampRound(v, 0, math.MaxUint8))
		}
	case format == SampleFormatUint && bits == 16:
		for i, v := range src {
			le.PutUint16(dst[i*2:], uint16(clampRound(v, 0, math.MaxUint16)))
		}
	case format == SampleFormatInt && bits == 16:
		for i, v := range src {
			le.PutUint16(dst[i*2:], uint16(int16(clampRound(v, math.MinInt16, math.MaxInt16))))
		}
	case format == SampleFormatUint && bits == 32:
		for i, v := range src {
			le.PutUint32(dst[i*4:], uint32(clampRound(v, 0, math.MaxUint32)))
		}
	case format == SampleFormatInt && bits == 32:
		for i, v := range src {
			le.PutUint32(dst[i*4:], uint32(int32(clampRound(v, math.MinInt32, math.MaxInt32))))
		}
	case format == SampleFormatFloat && bits == 32:
		for i, v := range src {
			le.PutUint32(dst[i*4:], math.Float32bits(float32(v)))
		}
	case format == SampleFormatFloat && bits == 64:
		for i, v := range src {
			le.PutUint64(dst[i*8:], math.Float64bits(v))
		}
	}
}

// tagEntry is one directory entry with its value already encoded.
type tagEntry struct {
	tag       uint16
	fieldType uint16
	count     uint32
	data      []byte
}

func shortEntry(tag uint16, values ...uint16) tagEntry {
	data := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}

	return tagEntry{tag: tag, fieldType: typeShort, count: uint32(len(values)), data: data}
}

func longEntry(tag uint16, values ...uint32) tagEntry {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}

	return tagEntry{tag: tag, fieldType: typeLong, count: uint32(len(values)), data: data}
}

func doubleEntry(tag uint16, values ...float64) tagEntry {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}

	return tagEntry{tag: tag, fieldType: typeDouble, count: uint32(len(values)), data: data}
}

func asciiEntry(tag uint16, text string) tagEntry {
	data := append([]byte(text), 0)

	return tagEntry{tag: tag, fieldType: typeASCII, count: uint32(len(data)), data: data}
}

// assemble lays out header, strips, directory, and out-of-line values.
func assemble(img *Image, rowsPerStrip int, strips [][]byte) []byte {
	le := binary.LittleEndian

	var stripArea bytes.Buffer

	offsets := make([]uint32, len(strips))
	counts := make([]uint32, len(strips))
	cursor := uint32(8)

	for i, strip := range strips {
		offsets[i] = cursor
		counts[i] = uint32(len(strip))
		stripArea.Write(strip)
		cursor += uint32(len(strip))

		// Keep offsets word aligned.
		if cursor%2 == 1 {
			stripArea.WriteByte(0)
			cursor++
		}
	}

	compressionCode := uint16(compressionNone)
	if img.Deflate {
		compressionCode = compressionDeflate
	}

	entries := []tagEntry{
		longEntry(tagImageWidth, uint32(img.Width)),
		longEntry(tagImageLength, uint32(img.Height)),
		shortEntry(tagBitsPerSample, uint16(img.BitsPerSample)),
		shortEntry(tagCompression, compressionCode),
		shortEntry(tagPhotometric, 1),
		longEntry(tagStripOffsets, offsets...),
		shortEntry(tagSamplesPerPixel, 1),
		longEntry(tagRowsPerStrip, uint32(rowsPerStrip)),
		longEntry(tagStripByteCounts, counts...),
		shortEntry(tagPlanarConfig, 1),
		shortEntry(tagSampleFormat, uint16(img.SampleFormat)),
	}

	if img.HasTransform {
		entries = append(entries, georeferenceEntries(img.Transform)...)
	}

	if directory, ascii := buildGeoKeys(img); len(directory) > 0 {
		entries = append(entries, shortEntry(tagGeoKeyDirectory, directory...))

		if ascii != "" {
			entries = append(entries, asciiEntry(tagGeoAsciiParams, ascii))
		}
	}

	if img.NoData != nil {
		entries = append(entries, asciiEntry(tagGDALNoData,
			strconv.FormatFloat(*img.NoData, 'g', -1, 64)))
	}

	if len(img.Metadata) > 0 {
		entries = append(entries, asciiEntry(tagGDALMetadata, formatGDALMetadata(img.Metadata)))
	}

	// Directory entries must be stored in ascending tag order.
	slices.SortFunc(entries, func(a, b tagEntry) int {
		return cmp.Compare(a.tag, b.tag)
	})

	ifdOffset := cursor
	valueStart := ifdOffset + 2 + 12*uint32(len(entries)) + 4

	var (
		ifd       bytes.Buffer
		valueArea bytes.Buffer
	)

	writeU16 := func(buf *bytes.Buffer, v uint16) {
		var scratch [2]byte

		le.PutUint16(scratch[:], v)
		buf.Write(scratch[:])
	}
	writeU32 := func(buf *bytes.Buffer, v uint32) {
		var scratch [4]byte

		le.PutUint32(scratch[:], v)
		buf.Write(scratch[:])
	}

	writeU16(&ifd, uint16(len(entries)))

	for _, entry := range entries {
		writeU16(&ifd, entry.tag)
		writeU16(&ifd, entry.fieldType)
		writeU32(&ifd, entry.count)

		if len(entry.data) <= 4 {
			padded := [4]byte{}
			copy(padded[:], entry.data)
			ifd.Write(padded[:])

			continue
		}

		writeU32(&ifd, valueStart+uint32(valueArea.Len()))
		valueArea.Write(entry.data)

		if valueArea.Len()%2 == 1 {
			valueArea.WriteByte(0)
		}
	}

	writeU32(&ifd, 0)

	file := make([]byte, 0, 8+stripArea.Len()+ifd.Len()+valueArea.Len())
	file = append(file, 'I', 'I')
	file = binary.LittleEndian.AppendUint16(file, 42)
	file = binary.LittleEndian.AppendUint32(file, ifdOffset)
	file = append(file, stripArea.Bytes()...)
	file = append(file, ifd.Bytes()...)
	file = append(file, valueArea.Bytes()...)

	return file
}

// georeferenceEntries renders the transform as a pixel scale and tiepoint
// pair when it is axis aligned, or as a full transformation matrix.
func georeferenceEntries(gt [6]float64) []tagEntry {
	if gt[2] == 0 && gt[4] == 0 {
		return []tagEntry{
			doubleEntry(tagModelPixelScale, gt[1], -gt[5], 0),
			doubleEntry(tagModelTiepoint, 0, 0, 0, gt[0], gt[3], 0),
		}
	}

	return []tagEntry{
		doubleEntry(tagModelTransformation,
			gt[1], gt[2], 0, gt[0],
			gt[4], gt[5], 0, gt[3],
			0, 0, 0, 0,
			0, 0, 0, 1),
	}
}
