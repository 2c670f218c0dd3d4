package pure

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// maxPixels bounds width*height for 8-bit formats before any pixel memory is allocated.
const maxPixels = 1 << 28

// PNG colour types from the IHDR chunk.
const (
	pngColourGrey      = 0
	pngColourGreyAlpha = 4
)

// decodeLDR decodes an 8-bit (or 16-bit, reduced to 8-bit) image into its natural channel
// count. It returns the interleaved samples, the dimensions and the channel count.
func decodeLDR(data []byte) (pix []uint8, w, h, comp int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, 0, errors.Wrap(err, "decode config")
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, 0, 0, 0, errors.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, 0, errors.Wrapf(err, "decode %s", format)
	}

	bounds := img.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	comp = naturalChannels(img, format, data)
	pix = make([]uint8, w*h*comp)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch comp {
			case 1:
				pix[i] = c.R
			case 2:
				pix[i], pix[i+1] = c.R, c.A
			case 3:
				pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
			case 4:
				pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
			}
			i += comp
		}
	}
	return pix, w, h, comp, nil
}

// naturalChannels reports the channel count the native decoder would report for img: grey 1,
// grey with alpha 2, colour 3, colour with alpha 4. GIF frames always carry alpha.
func naturalChannels(img image.Image, format string, data []byte) int {
	if format == "gif" {
		return 4
	}

	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.CMYK:
		return 3
	case *image.NRGBA, *image.NRGBA64:
		// The Go PNG decoder widens grey+alpha to NRGBA, so consult the header.
		if format == "png" {
			if ct, ok := pngColourType(data); ok && (ct == pngColourGreyAlpha || ct == pngColourGrey) {
				return 2
			}
		}
		return 4
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3
		}
		return 4
	}
	return 4
}

// pngColourType reads the colour type byte of the IHDR chunk.
func pngColourType(data []byte) (byte, bool) {
	// 8 byte signature, 4 byte length, "IHDR", 4 byte width, 4 byte height, bit depth.
	const offset = 8 + 4 + 4 + 4 + 4 + 1
	if len(data) <= offset || string(data[12:16]) != "IHDR" {
		return 0, false
	}
	if binary.BigEndian.Uint32(data[8:12]) < 13 {
		return 0, false
	}
	return data[offset], true
}
