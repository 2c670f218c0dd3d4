package pure

import (
	"github.com/chewxy/math32"
)

// Gamma and scale used when crossing between 8-bit and linear float samples.
const (
	ldrToHDRGamma = 2.2
	ldrToHDRScale = 1.0
	hdrToLDRGamma = 1 / 2.2
	hdrToLDRScale = 1.0
)

// luma computes the 8-bit luminance with the decoder's fixed-point weights.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*77 + uint32(g)*150 + uint32(b)*29) >> 8)
}

// convertChannels rewrites interleaved 8-bit samples from one channel count to another.
// Dropping colour computes luminance, adding alpha synthesizes an opaque value.
func convertChannels(src []uint8, from, to, pixels int) []uint8 {
	if from == to {
		return src
	}

	dst := make([]uint8, pixels*to)
	for i := 0; i < pixels; i++ {
		s := src[i*from : i*from+from]
		d := dst[i*to : i*to+to]

		switch from*10 + to {
		case 12:
			d[0], d[1] = s[0], 0xff
		case 13:
			d[0], d[1], d[2] = s[0], s[0], s[0]
		case 14:
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xff
		case 21:
			d[0] = s[0]
		case 23:
			d[0], d[1], d[2] = s[0], s[0], s[0]
		case 24:
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
		case 31:
			d[0] = luma(s[0], s[1], s[2])
		case 32:
			d[0], d[1] = luma(s[0], s[1], s[2]), 0xff
		case 34:
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
		case 41:
			d[0] = luma(s[0], s[1], s[2])
		case 42:
			d[0], d[1] = luma(s[0], s[1], s[2]), s[3]
		case 43:
			d[0], d[1], d[2] = s[0], s[1], s[2]
		}
	}
	return dst
}

// colourChannels returns how many leading channels carry colour; an even count means the
// last channel is alpha.
func colourChannels(comp int) int {
	if comp&1 == 0 {
		return comp - 1
	}
	return comp
}

// ldrToHDR linearizes 8-bit samples into floats. Alpha is scaled without gamma.
func ldrToHDR(src []uint8, comp, pixels int) []float32 {
	n := colourChannels(comp)
	dst := make([]float32, pixels*comp)
	for i := 0; i < pixels; i++ {
		for k := 0; k < n; k++ {
			dst[i*comp+k] = math32.Pow(float32(src[i*comp+k])/255, ldrToHDRGamma) * ldrToHDRScale
		}
		if n < comp {
			dst[i*comp+n] = float32(src[i*comp+n]) / 255
		}
	}
	return dst
}

// hdrToLDR gamma-encodes linear floats into clamped 8-bit samples. Alpha is scaled linearly.
func hdrToLDR(src []float32, comp, pixels int) []uint8 {
	n := colourChannels(comp)
	dst := make([]uint8, pixels*comp)
	for i := 0; i < pixels; i++ {
		for k := 0; k < n; k++ {
			z := math32.Pow(src[i*comp+k]*hdrToLDRScale, hdrToLDRGamma)*255 + 0.5
			dst[i*comp+k] = clampByte(z)
		}
		if n < comp {
			dst[i*comp+n] = clampByte(src[i*comp+n]*255 + 0.5)
		}
	}
	return dst
}

func clampByte(z float32) uint8 {
	// NaN fails both comparisons and lands on zero.
	if !(z > 0) {
		return 0
	}
	if z > 255 {
		return 255
	}
	return uint8(z)
}

// rgbeToFloat expands one RGBE quad into comp floats. Grey outputs average the three colour
// channels; alpha, when requested, is always 1.
func rgbeToFloat(dst []float32, rgbe []byte, comp int) {
	if rgbe[3] == 0 {
		switch comp {
		case 4:
			dst[3] = 1
			fallthrough
		case 3:
			dst[0], dst[1], dst[2] = 0, 0, 0
		case 2:
			dst[1] = 1
			fallthrough
		case 1:
			dst[0] = 0
		}
		return
	}

	f := math32.Ldexp(1, int(rgbe[3])-(128+8))
	if comp <= 2 {
		dst[0] = (float32(rgbe[0]) + float32(rgbe[1]) + float32(rgbe[2])) * f / 3
	} else {
		dst[0] = float32(rgbe[0]) * f
		dst[1] = float32(rgbe[1]) * f
		dst[2] = float32(rgbe[2]) * f
	}
	if comp == 2 {
		dst[1] = 1
	}
	if comp == 4 {
		dst[3] = 1
	}
}
