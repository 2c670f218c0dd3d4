package pure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// radianceFlat encodes w x h pixels of the quad px without run-length encoding.
func radianceFlat(w, h int, px [4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\n# test\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", h, w)
	for i := 0; i < w*h; i++ {
		buf.Write(px[:])
	}
	return buf.Bytes()
}

// radianceRLE encodes w x h pixels of the quad px as new-style RLE scanlines, one run per
// component plane. w must be between 8 and 127.
func radianceRLE(w, h int, px [4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RGBE\nFORMAT=32-bit_rle_rgbe\nEXPOSURE=1.0\n\n-Y %d +X %d\n", h, w)
	for y := 0; y < h; y++ {
		buf.Write([]byte{2, 2, byte(w >> 8), byte(w)})
		for k := 0; k < 4; k++ {
			buf.Write([]byte{byte(128 + w), px[k]})
		}
	}
	return buf.Bytes()
}

// rgbPNG encodes an opaque w x h image whose pixel (x, y) is (x, y, 9).
func rgbPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 9, A: 255})
		}
	}
	return encodePNG(t, img)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
