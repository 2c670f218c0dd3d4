package stbi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-stbi/native/nativetest"
	"github.com/nvr-ai/go-stbi/native/pure"
)

// rgbPNG encodes an opaque w x h image whose pixel (x, y) is (x, y, 200).
func rgbPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// radiance encodes a flat w x h Radiance image where every pixel is (1, 0.5, 0).
func radiance(w, h int) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", h, w)
	for i := 0; i < w*h; i++ {
		buf.Write([]byte{128, 64, 0, 129})
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// newRecorded returns a Loader over a recorded pure decoder.
func newRecorded(t *testing.T) (*Loader, *nativetest.Recorder, *pure.Decoder) {
	t.Helper()
	dec := pure.New()
	rec := nativetest.NewRecorder(dec)
	l, err := NewLoader(WithDecoder(rec))
	require.NoError(t, err)
	return l, rec, dec
}
