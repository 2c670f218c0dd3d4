package stbi

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func TestImageAccessors(t *testing.T) {
	img := &ImageU8{width: 2, height: 1, depth: 3, data: []uint8{1, 2, 3, 4, 5, 6}}

	assert.Equal(t, 6, img.Len())
	assert.Equal(t, uint8(5), img.At(1, 0, 1))
	assert.Panics(t, func() { img.At(2, 0, 0) })
	assert.Panics(t, func() { img.At(0, 0, 3) })
	assert.Panics(t, func() { img.At(0, -1, 0) })

	c := img.Clone()
	c[0] = 99
	assert.Equal(t, uint8(1), img.Data()[0], "clones do not alias the image")
}

func TestImageTensor(t *testing.T) {
	img := &ImageF32{width: 2, height: 3, depth: 1, data: []float32{0, 1, 2, 3, 4, 5}}

	tt := img.Tensor()
	require.NotNil(t, tt)
	assert.Equal(t, tensor.Shape{3, 2, 1}, tt.Shape())
	assert.Equal(t, tensor.Float32, tt.Dtype())

	v, err := tt.At(2, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(5), v)

	backing := tt.Data().([]float32)
	backing[0] = 42
	assert.Equal(t, float32(0), img.Data()[0])

	u8 := &ImageU8{width: 1, height: 1, depth: 4, data: []uint8{1, 2, 3, 4}}
	assert.Equal(t, tensor.Uint8, u8.Tensor().Dtype())

	empty := &ImageU8{}
	assert.Nil(t, empty.Tensor())
}

func TestTensorWithoutGCOverride(t *testing.T) {
	if v := os.Getenv("ASSUME_NO_MOVING_GC_UNSAFE_RISK_IT_WITH"); v != "" {
		t.Skipf("moving-GC check overridden with %q", v)
	}
	// Reaching this point means the tensor dependency initialized on this runtime.
	img := &ImageU8{width: 2, height: 2, depth: 1, data: []uint8{1, 2, 3, 4}}
	v, err := img.Tensor().At(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), v)
}

func TestKindAndAsError(t *testing.T) {
	var u LoadResult = &ImageU8{}
	var f LoadResult = &ImageF32{}
	var e LoadResult = &Error{Message: "stbi_load failed"}

	assert.Equal(t, "u8", Kind(u))
	assert.Equal(t, "f32", Kind(f))
	assert.Equal(t, "error", Kind(e))
	assert.Equal(t, "unknown", Kind(nil))

	assert.NoError(t, AsError(u))
	assert.NoError(t, AsError(f))
	err := AsError(e)
	require.Error(t, err)
	assert.EqualError(t, err, "stbi_load failed")

	var typed *Error
	assert.NoError(t, AsError(typed))
}
