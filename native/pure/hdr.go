package pure

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-stbi/native"
)

const (
	rgbeFormat = "FORMAT=32-bit_rle_rgbe"
	// Scanlines outside [rleMinWidth, rleMaxWidth) are never run-length encoded.
	rleMinWidth = 8
	rleMaxWidth = 0x8000
	// maxDimension bounds either side of a decoded image.
	maxDimension = 1 << 24
	// maxPixelsPerByte bounds the pixel count a Radiance stream of a given size can describe;
	// the densest RLE encoding stays well below it.
	maxPixelsPerByte = 32
)

var errNotRadiance = errors.New("not a Radiance RGBE image")

// decodeRadiance decodes a Radiance RGBE image into comp interleaved float samples per
// pixel. comp 0 keeps the natural three channels.
func decodeRadiance(data []byte, comp int) (pix []float32, w, h int, err error) {
	if !native.IsRadianceHeader(data) {
		return nil, 0, 0, errNotRadiance
	}
	if comp == 0 {
		comp = 3
	}

	r := bufio.NewReader(bytes.NewReader(data))
	w, h, err = readRadianceHeader(r)
	if err != nil {
		return nil, 0, 0, err
	}

	if int64(w)*int64(h) > int64(len(data))*maxPixelsPerByte {
		return nil, 0, 0, errors.Errorf("%dx%d image cannot fit in %d bytes", w, h, len(data))
	}

	pix = make([]float32, w*h*comp)
	quad := make([]byte, 4)

	if w < rleMinWidth || w >= rleMaxWidth {
		if err := readFlat(r, pix, 0, w*h, comp); err != nil {
			return nil, 0, 0, err
		}
		return pix, w, h, nil
	}

	scanline := make([]byte, w*4)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(r, quad); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "scanline %d header", y)
		}

		if quad[0] != 2 || quad[1] != 2 || quad[2]&0x80 != 0 {
			if y != 0 {
				return nil, 0, 0, errors.Errorf("scanline %d switches encoding", y)
			}
			// Uncompressed file: the quad just read is the first pixel.
			rgbeToFloat(pix[:comp], quad, comp)
			if err := readFlat(r, pix, 1, w*h, comp); err != nil {
				return nil, 0, 0, err
			}
			return pix, w, h, nil
		}

		if n := int(quad[2])<<8 | int(quad[3]); n != w {
			return nil, 0, 0, errors.Errorf("invalid decoded scanline length %d, want %d", n, w)
		}
		if err := readRLEScanline(r, scanline, w); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "scanline %d", y)
		}

		row := pix[y*w*comp : (y+1)*w*comp]
		for x := 0; x < w; x++ {
			rgbeToFloat(row[x*comp:x*comp+comp], scanline[x*4:x*4+4], comp)
		}
	}
	return pix, w, h, nil
}

// readRadianceHeader consumes the header block and the resolution line.
func readRadianceHeader(r *bufio.Reader) (w, h int, err error) {
	valid := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, 0, errors.Wrap(err, "header")
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if line == rgbeFormat {
			valid = true
		}
	}
	if !valid {
		return 0, 0, errors.New("unsupported format")
	}

	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, errors.Wrap(err, "resolution")
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, errors.Errorf("unsupported data layout %q", strings.TrimSpace(line))
	}
	if h, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, errors.Wrap(err, "height")
	}
	if w, err = strconv.Atoi(fields[3]); err != nil {
		return 0, 0, errors.Wrap(err, "width")
	}
	if w <= 0 || h <= 0 || w > maxDimension || h > maxDimension {
		return 0, 0, errors.Errorf("invalid dimensions %dx%d", w, h)
	}
	return w, h, nil
}

// readFlat reads uncompressed RGBE quads for pixels [from, total).
func readFlat(r io.Reader, pix []float32, from, total, comp int) error {
	quad := make([]byte, 4)
	for i := from; i < total; i++ {
		if _, err := io.ReadFull(r, quad); err != nil {
			return errors.Wrapf(err, "pixel %d", i)
		}
		rgbeToFloat(pix[i*comp:i*comp+comp], quad, comp)
	}
	return nil
}

// readRLEScanline decodes the four run-length encoded component planes of one scanline into
// interleaved RGBE quads.
func readRLEScanline(r *bufio.Reader, scanline []byte, w int) error {
	for k := 0; k < 4; k++ {
		for i := 0; i < w; {
			count, err := r.ReadByte()
			if err != nil {
				return errors.Wrap(err, "run length")
			}
			left := w - i

			if count > 128 {
				n := int(count) - 128
				if n > left {
					return errors.New("bad RLE data")
				}
				value, err := r.ReadByte()
				if err != nil {
					return errors.Wrap(err, "run value")
				}
				for ; n > 0; n-- {
					scanline[i*4+k] = value
					i++
				}
				continue
			}

			n := int(count)
			if n == 0 || n > left {
				return errors.New("bad RLE data")
			}
			for ; n > 0; n-- {
				value, err := r.ReadByte()
				if err != nil {
					return errors.Wrap(err, "literal")
				}
				scanline[i*4+k] = value
				i++
			}
		}
	}
	return nil
}
