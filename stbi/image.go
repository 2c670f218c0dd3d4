package stbi

import (
	"gorgonia.org/tensor"
)

// Sample is the element type of decoded pixel data.
type Sample interface {
	uint8 | float32
}

// Image is a decoded raster. Samples are interleaved row-major, Depth samples per pixel.
// An Image owns its pixel memory and is never modified after construction.
type Image[T Sample] struct {
	width  int
	height int
	depth  int
	data   []T
}

// ImageU8 holds 8-bit samples.
type ImageU8 = Image[uint8]

// ImageF32 holds linear float samples decoded from an HDR source.
type ImageF32 = Image[float32]

// Width returns the width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Depth returns the number of samples per pixel.
func (img *Image[T]) Depth() int {
	return img.depth
}

// Len returns the number of samples, Width*Height*Depth.
func (img *Image[T]) Len() int {
	return len(img.data)
}

// Data returns the samples. The slice belongs to the image and must not be modified;
// use Clone for a writable copy.
func (img *Image[T]) Data() []T {
	return img.data
}

// At returns sample c of the pixel at (x, y). It panics if the coordinates are out of range,
// like a slice index would.
func (img *Image[T]) At(x, y, c int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || c < 0 || c >= img.depth {
		panic("stbi: Image.At coordinates out of range")
	}
	return img.data[(y*img.width+x)*img.depth+c]
}

// Clone returns a copy of the samples.
func (img *Image[T]) Clone() []T {
	out := make([]T, len(img.data))
	copy(out, img.data)
	return out
}

// Tensor returns the samples as a height x width x depth tensor backed by a copy of the data,
// ready for HWC model inputs. It returns nil for an image without pixels.
//
// Returns:
// - *tensor.Dense: A dense tensor of dtype Uint8 or Float32.
func (img *Image[T]) Tensor() *tensor.Dense {
	if len(img.data) == 0 {
		return nil
	}
	return tensor.New(
		tensor.WithShape(img.height, img.width, img.depth),
		tensor.WithBacking(img.Clone()),
	)
}

func (*Image[T]) loadResult() {}
