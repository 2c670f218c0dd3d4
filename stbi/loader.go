package stbi

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/native"
)

// Loader runs the load operations against one native.Decoder. Create it with NewLoader; the
// zero Loader has no decoder.
type Loader struct {
	decoder native.Decoder
	logger  *zap.Logger
}

type options struct {
	decoder native.Decoder
	config  native.Config
	logger  *zap.Logger
}

// Option configures NewLoader.
type Option func(*options)

// WithDecoder binds the Loader to dec, bypassing backend lookup.
func WithDecoder(dec native.Decoder) Option {
	return func(o *options) {
		o.decoder = dec
	}
}

// WithBackend selects a registered backend by configuration.
func WithBackend(cfg native.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets the logger for dispatch and failure diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewLoader creates a Loader.
//
// Arguments:
// - opts: WithDecoder or WithBackend choose the decoder (default: native.DefaultBackend);
//   WithLogger sets the logger (default: no logging).
//
// Returns:
// - *Loader: The configured loader.
// - error: An error if the requested backend cannot be opened.
func NewLoader(opts ...Option) (*Loader, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	dec := o.decoder
	if dec == nil {
		var err error
		dec, err = native.Open(o.config)
		if err != nil {
			return nil, errors.Wrap(err, "open decoder")
		}
	}

	return &Loader{
		decoder: dec,
		logger:  o.logger.With(zap.String("backend", string(dec.Backend()))),
	}, nil
}

func (l *Loader) log() *zap.Logger {
	if l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Decoder returns the decoder the Loader is bound to.
func (l *Loader) Decoder() native.Decoder {
	return l.decoder
}

// Load decodes the image at path with its natural channel count. HDR files decode to
// *ImageF32, everything else to *ImageU8.
func (l *Loader) Load(path string) LoadResult {
	return l.LoadWithDepth(path, 0, false)
}

// LoadWithDepth decodes the image at path.
//
// Arguments:
// - path: File to decode.
// - forcedDepth: Channels to convert to, 1 to 4, or 0 for the file's own channel count.
// - convertHDR: Decode HDR files to 8-bit samples instead of float.
//
// Returns:
// - LoadResult: *ImageU8, *ImageF32 or *Error.
func (l *Loader) LoadWithDepth(path string, forcedDepth int, convertHDR bool) LoadResult {
	if res := checkDepth(forcedDepth); res != nil {
		return res
	}
	cpath, res := marshalPath(path)
	if res != nil {
		return res
	}

	r := chooseRoute(convertHDR, func() bool { return l.decoder.IsHDR(cpath) })
	l.log().Debug("load",
		zap.String("path", path),
		zap.Stringer("route", r),
		zap.Int("forced_depth", forcedDepth),
		zap.Bool("convert_hdr", convertHDR),
	)

	if r == routeFloat {
		buf, info := l.decoder.LoadF(cpath, forcedDepth)
		return collect[float32](l, native.EntryLoadF, buf, info, forcedDepth)
	}
	buf, info := l.decoder.Load(cpath, forcedDepth)
	return collect[uint8](l, native.EntryLoad, buf, info, forcedDepth)
}

// LoadFromMemory decodes an encoded image held in data with its natural channel count.
func (l *Loader) LoadFromMemory(data []byte) LoadResult {
	return l.LoadFromMemoryWithDepth(data, 0, false)
}

// LoadFromMemoryWithDepth decodes an encoded image held in data. The arguments match
// LoadWithDepth. data is only read.
func (l *Loader) LoadFromMemoryWithDepth(data []byte, forcedDepth int, convertHDR bool) LoadResult {
	if res := checkDepth(forcedDepth); res != nil {
		return res
	}
	input, res := marshalMemory(data)
	if res != nil {
		return res
	}

	r := chooseRoute(convertHDR, func() bool { return l.decoder.IsHDRFromMemory(input) })
	l.log().Debug("load from memory",
		zap.Int("bytes", len(input)),
		zap.Stringer("route", r),
		zap.Int("forced_depth", forcedDepth),
		zap.Bool("convert_hdr", convertHDR),
	)

	if r == routeFloat {
		buf, info := l.decoder.LoadFFromMemory(input, forcedDepth)
		return collect[float32](l, native.EntryLoadFFromMemory, buf, info, forcedDepth)
	}
	buf, info := l.decoder.LoadFromMemory(input, forcedDepth)
	return collect[uint8](l, native.EntryLoadFromMemory, buf, info, forcedDepth)
}
