//go:build (linux && !android) || darwin

package stbdl

import (
	"os"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-stbi/native"
)

// EnvLibraryPath overrides the library location when Config.LibraryPath is empty.
const EnvLibraryPath = "STBI_LIBRARY_PATH"

func init() {
	native.Register(native.BackendSTBDL, func(cfg native.Config) (native.Decoder, error) {
		return Open(cfg.LibraryPath)
	})
}

// Decoder calls stb_image through function pointers resolved from a shared library.
type Decoder struct {
	handle uintptr

	isHDR           func(path *byte) int32
	isHDRFromMemory func(buf *byte, n int32) int32
	load            func(path *byte, x, y, comp *int32, req int32) unsafe.Pointer
	loadFromMemory  func(buf *byte, n int32, x, y, comp *int32, req int32) unsafe.Pointer
	loadf           func(path *byte, x, y, comp *int32, req int32) unsafe.Pointer
	loadfFromMemory func(buf *byte, n int32, x, y, comp *int32, req int32) unsafe.Pointer
	imageFree       func(p unsafe.Pointer)
}

// Open loads the stb_image library and resolves its entry points.
//
// Arguments:
// - path: Library file to open. Empty tries STBI_LIBRARY_PATH and then the default names.
//
// Returns:
// - *Decoder: A decoder bound to the library.
// - error: An error if no candidate could be opened or a symbol is missing.
func Open(path string) (*Decoder, error) {
	candidates := libraryNames
	if env := os.Getenv(EnvLibraryPath); env != "" {
		candidates = []string{env}
	}
	if path != "" {
		candidates = []string{path}
	}

	handle, err := loadLibrary(candidates)
	if err != nil {
		return nil, err
	}

	d := &Decoder{handle: handle}
	symbols := []struct {
		fptr any
		name string
	}{
		{&d.isHDR, "stbi_is_hdr"},
		{&d.isHDRFromMemory, "stbi_is_hdr_from_memory"},
		{&d.load, native.EntryLoad},
		{&d.loadFromMemory, native.EntryLoadFromMemory},
		{&d.loadf, native.EntryLoadF},
		{&d.loadfFromMemory, native.EntryLoadFFromMemory},
		{&d.imageFree, "stbi_image_free"},
	}
	for _, sym := range symbols {
		if _, err := purego.Dlsym(handle, sym.name); err != nil {
			_ = purego.Dlclose(handle)
			return nil, errors.Wrapf(err, "resolve %s", sym.name)
		}
		purego.RegisterLibFunc(sym.fptr, handle, sym.name)
	}

	return d, nil
}

func loadLibrary(candidates []string) (uintptr, error) {
	if !isDynamicBinary() {
		return 0, errors.New("not a dynamic binary")
	}

	var last error
	for _, name := range candidates {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		last = err
	}
	return 0, errors.Wrapf(last, "cannot load stb_image from %v", candidates)
}

// Close releases the library handle. Buffers still outstanding must not be freed afterwards.
func (d *Decoder) Close() error {
	return purego.Dlclose(d.handle)
}

// Backend implements native.Decoder.
func (d *Decoder) Backend() native.Backend {
	return native.BackendSTBDL
}

// IsHDR implements native.Decoder.
func (d *Decoder) IsHDR(path native.CString) bool {
	return d.isHDR(path.Ptr()) != 0
}

// IsHDRFromMemory implements native.Decoder.
func (d *Decoder) IsHDRFromMemory(data []byte) bool {
	ptr, n := membuf(data)
	return d.isHDRFromMemory(ptr, n) != 0
}

// Load implements native.Decoder.
func (d *Decoder) Load(path native.CString, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp int32
	return result(d.load(path.Ptr(), &x, &y, &comp, int32(reqComp)), x, y, comp)
}

// LoadFromMemory implements native.Decoder.
func (d *Decoder) LoadFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp int32
	ptr, n := membuf(data)
	return result(d.loadFromMemory(ptr, n, &x, &y, &comp, int32(reqComp)), x, y, comp)
}

// LoadF implements native.Decoder.
func (d *Decoder) LoadF(path native.CString, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp int32
	return result(d.loadf(path.Ptr(), &x, &y, &comp, int32(reqComp)), x, y, comp)
}

// LoadFFromMemory implements native.Decoder.
func (d *Decoder) LoadFFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp int32
	ptr, n := membuf(data)
	return result(d.loadfFromMemory(ptr, n, &x, &y, &comp, int32(reqComp)), x, y, comp)
}

// Free implements native.Decoder.
func (d *Decoder) Free(buf native.Buffer) {
	if buf.IsNull() {
		return
	}
	d.imageFree(buf.Pointer())
}

func membuf(data []byte) (*byte, int32) {
	if len(data) == 0 {
		var empty [1]byte
		return &empty[0], 0
	}
	return unsafe.SliceData(data), int32(len(data))
}

func result(p unsafe.Pointer, x, y, comp int32) (native.Buffer, native.Info) {
	if p == nil {
		return native.Buffer{}, native.Info{}
	}
	return native.BufferAt(p), native.Info{Width: int(x), Height: int(y), Channels: int(comp)}
}
