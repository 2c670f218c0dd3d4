package pure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuma(t *testing.T) {
	assert.Equal(t, uint8(0), luma(0, 0, 0))
	assert.Equal(t, uint8(255), luma(255, 255, 255))
	assert.Equal(t, uint8(76), luma(255, 0, 0))
	assert.Equal(t, uint8(149), luma(0, 255, 0))
	assert.Equal(t, uint8(28), luma(0, 0, 255))
}

func TestConvertChannels(t *testing.T) {
	tests := []struct {
		name     string
		src      []uint8
		from, to int
		want     []uint8
	}{
		{"grey to grey alpha", []uint8{10, 20}, 1, 2, []uint8{10, 255, 20, 255}},
		{"grey to rgb", []uint8{10}, 1, 3, []uint8{10, 10, 10}},
		{"grey to rgba", []uint8{10}, 1, 4, []uint8{10, 10, 10, 255}},
		{"grey alpha to grey", []uint8{10, 99}, 2, 1, []uint8{10}},
		{"grey alpha to rgb", []uint8{10, 99}, 2, 3, []uint8{10, 10, 10}},
		{"grey alpha to rgba", []uint8{10, 99}, 2, 4, []uint8{10, 10, 10, 99}},
		{"rgb to grey", []uint8{255, 255, 255}, 3, 1, []uint8{255}},
		{"rgb to grey alpha", []uint8{255, 0, 0}, 3, 2, []uint8{76, 255}},
		{"rgb to rgba", []uint8{1, 2, 3}, 3, 4, []uint8{1, 2, 3, 255}},
		{"rgba to grey", []uint8{0, 255, 0, 7}, 4, 1, []uint8{149}},
		{"rgba to grey alpha", []uint8{0, 0, 255, 7}, 4, 2, []uint8{28, 7}},
		{"rgba to rgb", []uint8{1, 2, 3, 4}, 4, 3, []uint8{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels := len(tt.src) / tt.from
			assert.Equal(t, tt.want, convertChannels(tt.src, tt.from, tt.to, pixels))
		})
	}
}

func TestConvertChannelsSameCountIsIdentity(t *testing.T) {
	src := []uint8{1, 2, 3}
	out := convertChannels(src, 3, 3, 1)
	assert.Same(t, &src[0], &out[0])
}

func TestLDRToHDRKeepsAlphaLinear(t *testing.T) {
	out := ldrToHDR([]uint8{255, 0, 128, 51}, 4, 1)
	assert.InDelta(t, 1.0, out[0], 1e-6)
	assert.InDelta(t, 0.0, out[1], 1e-6)
	assert.InDelta(t, math.Pow(128.0/255, 2.2), out[2], 1e-5)
	assert.InDelta(t, 0.2, out[3], 1e-6)

	grey := ldrToHDR([]uint8{51, 51}, 2, 1)
	assert.InDelta(t, math.Pow(0.2, 2.2), grey[0], 1e-6)
	assert.InDelta(t, 0.2, grey[1], 1e-6)
}

func TestHDRToLDRClamps(t *testing.T) {
	nan := float32(math.NaN())
	out := hdrToLDR([]float32{1, 4, -1, nan}, 1, 4)
	assert.Equal(t, []uint8{255, 255, 0, 0}, out)

	rgba := hdrToLDR([]float32{0.5, 0, 1, 0.5}, 4, 1)
	assert.Equal(t, uint8(math.Pow(0.5, 1/2.2)*255+0.5), rgba[0])
	assert.Equal(t, uint8(0), rgba[1])
	assert.Equal(t, uint8(255), rgba[2])
	assert.Equal(t, uint8(128), rgba[3])
}

func TestRGBEToFloat(t *testing.T) {
	quad := []byte{128, 64, 0, 129}

	rgb := make([]float32, 3)
	rgbeToFloat(rgb, quad, 3)
	assert.Equal(t, []float32{1, 0.5, 0}, rgb)

	rgba := make([]float32, 4)
	rgbeToFloat(rgba, quad, 4)
	assert.Equal(t, []float32{1, 0.5, 0, 1}, rgba)

	grey := make([]float32, 1)
	rgbeToFloat(grey, quad, 1)
	assert.InDelta(t, 0.5, grey[0], 1e-6)

	ga := make([]float32, 2)
	rgbeToFloat(ga, quad, 2)
	assert.InDelta(t, 0.5, ga[0], 1e-6)
	assert.Equal(t, float32(1), ga[1])

	zero := []float32{9, 9, 9, 9}
	rgbeToFloat(zero, []byte{200, 200, 200, 0}, 4)
	assert.Equal(t, []float32{0, 0, 0, 1}, zero)
}
