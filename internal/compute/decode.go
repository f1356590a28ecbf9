package compute

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/slide-archive/histogramd/internal/domain"
)

// Pixels holds decoded single-channel pixel values. Unsigned integer
// samples land in Values with BitDepth giving the sample width (8, 16
// or 32); signed integer and floating-point samples land in Floats
// with Float set, since they cannot be bit-tested or unit-binned.
type Pixels struct {
	Values   []uint64
	Floats   []float64
	Float    bool
	BitDepth int
}

// DecodeImage decodes grayscale or paletted image bytes into raw
// sample values. Multi-channel images are rejected; histograms are
// defined over single-channel data only.
func DecodeImage(data []byte) (*Pixels, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// The registered TIFF decoder stops at 16-bit samples.
		// Scientific imagery uses 32-bit integer and float TIFFs, so
		// those get a dedicated reader.
		if isTIFF(data) {
			if pixels, tiffErr := decodeTIFFGray32(data); tiffErr == nil {
				return pixels, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	values := make([]uint64, 0, width*height)

	switch src := img.(type) {
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[(y-bounds.Min.Y)*src.Stride:]
			for x := 0; x < width; x++ {
				values = append(values, uint64(row[x]))
			}
		}
		return &Pixels{Values: values, BitDepth: 8}, nil

	case *image.Gray16:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				values = append(values, uint64(src.Gray16At(x, y).Y))
			}
		}
		return &Pixels{Values: values, BitDepth: 16}, nil

	case *image.Paletted:
		// Palette indices are the sample values, matching indexed
		// label images
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[(y-bounds.Min.Y)*src.Stride:]
			for x := 0; x < width; x++ {
				values = append(values, uint64(row[x]))
			}
		}
		return &Pixels{Values: values, BitDepth: 8}, nil

	default:
		return nil, fmt.Errorf("%w: %s image with color model %T", domain.ErrUnsupportedFormat, format, img.ColorModel())
	}
}
