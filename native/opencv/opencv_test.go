//go:build gocv

package opencv

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/native"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFromMemoryRGBOrder(t *testing.T) {
	dec := New(zap.NewNop())

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	data := pngBytes(t, img)

	buf, info := dec.LoadFromMemory(data, 0)
	require.False(t, buf.IsNull())
	assert.Equal(t, native.Info{Width: 3, Height: 2, Channels: 3}, info)
	pix := unsafe.Slice((*byte)(buf.Pointer()), 3*2*3)
	assert.Equal(t, []byte{10, 20, 30}, pix[:3])
	dec.Free(buf)

	buf, _ = dec.LoadFromMemory(data, 4)
	require.False(t, buf.IsNull())
	pix = unsafe.Slice((*byte)(buf.Pointer()), 3*2*4)
	assert.Equal(t, []byte{10, 20, 30, 255}, pix[:4])
	dec.Free(buf)

	assert.Zero(t, dec.Outstanding())
}

func TestLoadFFromMemoryAlphaStaysLinear(t *testing.T) {
	dec := New(zap.NewNop())

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 51})

	buf, info := dec.LoadFFromMemory(pngBytes(t, img), 0)
	require.False(t, buf.IsNull())
	defer dec.Free(buf)

	assert.Equal(t, 4, info.Channels)
	pix := unsafe.Slice((*float32)(buf.Pointer()), 4)
	assert.InDelta(t, 1.0, pix[0], 1e-5)
	assert.InDelta(t, 0.0, pix[1], 1e-5)
	assert.InDelta(t, 0.2, pix[3], 1e-5)
}

func TestLoadFromMemoryFailures(t *testing.T) {
	dec := New(zap.NewNop())

	buf, _ := dec.LoadFromMemory(nil, 0)
	assert.True(t, buf.IsNull())

	buf, _ = dec.LoadFromMemory([]byte("garbage"), 3)
	assert.True(t, buf.IsNull())

	assert.Panics(t, func() {
		var x byte
		dec.Free(native.BufferAt(unsafe.Pointer(&x)))
	})
}
