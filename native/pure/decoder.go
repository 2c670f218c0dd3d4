package pure

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/native"
)

var errBadReqComp = errors.New("requested channel count out of range")

func init() {
	native.Register(native.BackendPure, func(native.Config) (native.Decoder, error) {
		return New(), nil
	})
}

// Decoder implements native.Decoder in Go. It is safe for concurrent use.
type Decoder struct {
	arena  *arena
	logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger that receives decode failure reasons at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Decoder.
//
// Arguments:
// - opts: Optional configuration.
//
// Returns:
// - *Decoder: A decoder with an empty allocation arena.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		arena:  newArena(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backend implements native.Decoder.
func (d *Decoder) Backend() native.Backend {
	return native.BackendPure
}

// Outstanding returns the number of buffers handed out and not yet freed.
func (d *Decoder) Outstanding() int {
	return d.arena.outstanding()
}

// IsHDR implements native.Decoder.
func (d *Decoder) IsHDR(path native.CString) bool {
	return native.IsRadianceFile(path.String())
}

// IsHDRFromMemory implements native.Decoder.
func (d *Decoder) IsHDRFromMemory(data []byte) bool {
	return native.IsRadianceHeader(data)
}

// Load implements native.Decoder.
func (d *Decoder) Load(path native.CString, reqComp int) (native.Buffer, native.Info) {
	data, ok := d.readFile(native.EntryLoad, path)
	if !ok {
		return native.Buffer{}, native.Info{}
	}
	return d.load8(native.EntryLoad, data, reqComp)
}

// LoadFromMemory implements native.Decoder.
func (d *Decoder) LoadFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	return d.load8(native.EntryLoadFromMemory, data, reqComp)
}

// LoadF implements native.Decoder.
func (d *Decoder) LoadF(path native.CString, reqComp int) (native.Buffer, native.Info) {
	data, ok := d.readFile(native.EntryLoadF, path)
	if !ok {
		return native.Buffer{}, native.Info{}
	}
	return d.loadFloat(native.EntryLoadF, data, reqComp)
}

// LoadFFromMemory implements native.Decoder.
func (d *Decoder) LoadFFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	return d.loadFloat(native.EntryLoadFFromMemory, data, reqComp)
}

// Free implements native.Decoder. Freeing the null Buffer is a no-op.
func (d *Decoder) Free(buf native.Buffer) {
	d.arena.release(buf)
}

func (d *Decoder) readFile(entry string, path native.CString) ([]byte, bool) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		d.fail(entry, err)
		return nil, false
	}
	return data, true
}

// load8 decodes into 8-bit samples. HDR sources are tone mapped after decoding.
func (d *Decoder) load8(entry string, data []byte, reqComp int) (native.Buffer, native.Info) {
	if !validReqComp(reqComp) {
		d.fail(entry, errBadReqComp)
		return native.Buffer{}, native.Info{}
	}

	if native.IsRadianceHeader(data) {
		hdr, w, h, err := decodeRadiance(data, reqComp)
		if err != nil {
			d.fail(entry, err)
			return native.Buffer{}, native.Info{}
		}
		comp := outputChannels(reqComp, 3)
		return adopt(d.arena, hdrToLDR(hdr, comp, w*h)), native.Info{Width: w, Height: h, Channels: 3}
	}

	pix, w, h, comp, err := decodeLDR(data)
	if err != nil {
		d.fail(entry, err)
		return native.Buffer{}, native.Info{}
	}
	pix = convertChannels(pix, comp, outputChannels(reqComp, comp), w*h)
	return adopt(d.arena, pix), native.Info{Width: w, Height: h, Channels: comp}
}

// loadFloat decodes into float samples. 8-bit sources are linearized after decoding.
func (d *Decoder) loadFloat(entry string, data []byte, reqComp int) (native.Buffer, native.Info) {
	if !validReqComp(reqComp) {
		d.fail(entry, errBadReqComp)
		return native.Buffer{}, native.Info{}
	}

	if native.IsRadianceHeader(data) {
		hdr, w, h, err := decodeRadiance(data, reqComp)
		if err != nil {
			d.fail(entry, err)
			return native.Buffer{}, native.Info{}
		}
		return adopt(d.arena, hdr), native.Info{Width: w, Height: h, Channels: 3}
	}

	pix, w, h, comp, err := decodeLDR(data)
	if err != nil {
		d.fail(entry, err)
		return native.Buffer{}, native.Info{}
	}
	out := outputChannels(reqComp, comp)
	pix = convertChannels(pix, comp, out, w*h)
	return adopt(d.arena, ldrToHDR(pix, out, w*h)), native.Info{Width: w, Height: h, Channels: comp}
}

func (d *Decoder) fail(entry string, err error) {
	d.logger.Debug("decode failed",
		zap.String("backend", string(native.BackendPure)),
		zap.String("entry", entry),
		zap.Error(err),
	)
}

func validReqComp(reqComp int) bool {
	return reqComp >= 0 && reqComp <= native.MaxChannels
}

func outputChannels(reqComp, natural int) int {
	if reqComp != 0 {
		return reqComp
	}
	return natural
}
