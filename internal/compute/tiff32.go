package compute

import (
	"encoding/binary"
	"errors"
	"math"
)

// Reader for single-channel 32-bit TIFFs, the sample width the
// registered decoder does not handle. Only uncompressed baseline
// strips are supported; anything else falls through to the caller's
// unsupported-format error.

const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagStripByteCounts = 279
	tagSampleFormat    = 339
)

const (
	sampleFormatUint  = 1
	sampleFormatInt   = 2
	sampleFormatFloat = 3
)

var errTIFFUnsupported = errors.New("unsupported tiff layout")

func isTIFF(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	return (data[0] == 'I' && data[1] == 'I') || (data[0] == 'M' && data[1] == 'M')
}

type tiffField struct {
	fieldType uint16
	count     uint32
	raw       []byte
}

// decodeTIFFGray32 reads an uncompressed single-channel TIFF with
// 32-bit samples. Unsigned samples become integer pixels; signed and
// IEEE float samples become float pixels.
func decodeTIFFGray32(data []byte) (*Pixels, error) {
	if len(data) < 8 {
		return nil, errTIFFUnsupported
	}

	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, errTIFFUnsupported
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, errTIFFUnsupported
	}

	fields, err := parseIFD(data, order, order.Uint32(data[4:8]))
	if err != nil {
		return nil, err
	}

	width := fieldScalar(fields, order, tagImageWidth, 0)
	height := fieldScalar(fields, order, tagImageLength, 0)
	bits := fieldScalar(fields, order, tagBitsPerSample, 0)
	compression := fieldScalar(fields, order, tagCompression, 1)
	samplesPerPixel := fieldScalar(fields, order, tagSamplesPerPixel, 1)
	sampleFormat := fieldScalar(fields, order, tagSampleFormat, sampleFormatUint)

	if width == 0 || height == 0 || bits != 32 || compression != 1 || samplesPerPixel != 1 {
		return nil, errTIFFUnsupported
	}
	if sampleFormat != sampleFormatUint && sampleFormat != sampleFormatInt && sampleFormat != sampleFormatFloat {
		return nil, errTIFFUnsupported
	}

	offsets, err := fieldValues(data, fields, order, tagStripOffsets)
	if err != nil {
		return nil, err
	}
	byteCounts, err := fieldValues(data, fields, order, tagStripByteCounts)
	if err != nil {
		return nil, err
	}
	if len(offsets) != len(byteCounts) {
		return nil, errTIFFUnsupported
	}

	total := int(width) * int(height)
	samples := make([]uint32, 0, total)
	for i, offset := range offsets {
		count := byteCounts[i]
		if count%4 != 0 || uint64(offset)+uint64(count) > uint64(len(data)) {
			return nil, errTIFFUnsupported
		}
		strip := data[offset : offset+count]
		for pos := 0; pos < len(strip); pos += 4 {
			samples = append(samples, order.Uint32(strip[pos:pos+4]))
		}
	}
	if len(samples) != total {
		return nil, errTIFFUnsupported
	}

	switch sampleFormat {
	case sampleFormatInt:
		floats := make([]float64, total)
		for i, s := range samples {
			floats[i] = float64(int32(s))
		}
		return &Pixels{Floats: floats, Float: true, BitDepth: 32}, nil
	case sampleFormatFloat:
		floats := make([]float64, total)
		for i, s := range samples {
			floats[i] = float64(math.Float32frombits(s))
		}
		return &Pixels{Floats: floats, Float: true, BitDepth: 32}, nil
	default:
		values := make([]uint64, total)
		for i, s := range samples {
			values[i] = uint64(s)
		}
		return &Pixels{Values: values, BitDepth: 32}, nil
	}
}

func parseIFD(data []byte, order binary.ByteOrder, offset uint32) (map[uint16]tiffField, error) {
	if uint64(offset)+2 > uint64(len(data)) {
		return nil, errTIFFUnsupported
	}
	count := int(order.Uint16(data[offset : offset+2]))
	end := uint64(offset) + 2 + uint64(count)*12
	if end > uint64(len(data)) {
		return nil, errTIFFUnsupported
	}

	fields := make(map[uint16]tiffField, count)
	for i := 0; i < count; i++ {
		entry := data[uint64(offset)+2+uint64(i)*12 : uint64(offset)+2+uint64(i+1)*12]
		fields[order.Uint16(entry[0:2])] = tiffField{
			fieldType: order.Uint16(entry[2:4]),
			count:     order.Uint32(entry[4:8]),
			raw:       entry[8:12],
		}
	}
	return fields, nil
}

func typeSize(fieldType uint16) int {
	switch fieldType {
	case 3: // SHORT
		return 2
	case 4: // LONG
		return 4
	default:
		return 0
	}
}

// fieldScalar reads a single-valued SHORT or LONG field, falling back
// to def when the tag is absent.
func fieldScalar(fields map[uint16]tiffField, order binary.ByteOrder, tag uint16, def uint32) uint32 {
	field, ok := fields[tag]
	if !ok {
		return def
	}
	if field.count != 1 {
		return 0
	}
	switch field.fieldType {
	case 3:
		return uint32(order.Uint16(field.raw[0:2]))
	case 4:
		return order.Uint32(field.raw[0:4])
	default:
		return 0
	}
}

// fieldValues reads a SHORT or LONG field of any count. Values that do
// not fit inline are stored at the offset the entry points to.
func fieldValues(data []byte, fields map[uint16]tiffField, order binary.ByteOrder, tag uint16) ([]uint32, error) {
	field, ok := fields[tag]
	if !ok {
		return nil, errTIFFUnsupported
	}
	size := typeSize(field.fieldType)
	if size == 0 || field.count == 0 {
		return nil, errTIFFUnsupported
	}

	raw := field.raw
	if int(field.count)*size > 4 {
		start := uint64(order.Uint32(field.raw[0:4]))
		end := start + uint64(field.count)*uint64(size)
		if end > uint64(len(data)) {
			return nil, errTIFFUnsupported
		}
		raw = data[start:end]
	}

	values := make([]uint32, 0, field.count)
	for i := 0; i < int(field.count); i++ {
		if field.fieldType == 3 {
			values = append(values, uint32(order.Uint16(raw[i*2:i*2+2])))
		} else {
			values = append(values, order.Uint32(raw[i*4:i*4+4]))
		}
	}
	return values, nil
}
