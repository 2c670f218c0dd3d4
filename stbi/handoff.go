package stbi

import (
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/native"
)

// effectiveDepth is the channel count actually present in a decoded buffer. When a depth is
// forced the decoder still reports the source's channel count, not the converted one.
func effectiveDepth(forcedDepth, reported int) int {
	if forcedDepth != 0 {
		return forcedDepth
	}
	return reported
}

// collect turns the outcome of one decode call into a LoadResult. A null buffer becomes an
// Error naming the entry point; anything else is copied out and released.
func collect[T Sample](l *Loader, entry string, buf native.Buffer, info native.Info, forcedDepth int) LoadResult {
	if buf.IsNull() {
		l.log().Debug("decode failed", zap.String("entry", entry), zap.Int("forced_depth", forcedDepth))
		return newError(entry + " failed")
	}

	depth := effectiveDepth(forcedDepth, info.Channels)
	if !validGeometry(info.Width, info.Height, depth) {
		l.decoder.Free(buf)
		l.log().Warn("decoder reported invalid geometry",
			zap.String("entry", entry),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
			zap.Int("depth", depth),
		)
		return newError(fmt.Sprintf("%s returned invalid dimensions %dx%dx%d", entry, info.Width, info.Height, depth))
	}

	return handoff[T](l.decoder, buf, info.Width, info.Height, depth)
}

// validGeometry reports whether the sample count of a buffer is representable.
func validGeometry(width, height, depth int) bool {
	if width < 0 || height < 0 || depth < 1 || depth > native.MaxChannels {
		return false
	}
	if width > math.MaxInt/depth {
		return false
	}
	return width == 0 || height <= math.MaxInt/(width*depth)
}

// handoff copies width*height*depth samples out of buf into memory the image owns, then
// releases buf. The release is deferred so it runs exactly once, after the copy, on every
// exit path.
func handoff[T Sample](dec native.Decoder, buf native.Buffer, width, height, depth int) *Image[T] {
	defer dec.Free(buf)

	n := width * height * depth
	data := make([]T, n)
	if n > 0 {
		copy(data, unsafe.Slice((*T)(buf.Pointer()), n))
	}

	return &Image[T]{
		width:  width,
		height: height,
		depth:  depth,
		data:   data,
	}
}
