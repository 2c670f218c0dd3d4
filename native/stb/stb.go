//go:build stb && cgo

package stb

/*
#cgo pkg-config: stb
#cgo LDFLAGS: -lm
#include <stdlib.h>
#include <stb_image.h>
*/
import "C"

import (
	"unsafe"

	"github.com/nvr-ai/go-stbi/native"
)

func init() {
	native.Register(native.BackendSTB, func(native.Config) (native.Decoder, error) {
		return Decoder{}, nil
	})
}

// Decoder calls stb_image directly. stb_image keeps no state between calls other than its
// global flags, which this package never sets, so Decoder is safe for concurrent use.
type Decoder struct{}

// Backend implements native.Decoder.
func (Decoder) Backend() native.Backend {
	return native.BackendSTB
}

// IsHDR implements native.Decoder.
func (Decoder) IsHDR(path native.CString) bool {
	return C.stbi_is_hdr(cpath(path)) != 0
}

// IsHDRFromMemory implements native.Decoder.
func (Decoder) IsHDRFromMemory(data []byte) bool {
	ptr, n := cbuf(data)
	return C.stbi_is_hdr_from_memory(ptr, n) != 0
}

// Load implements native.Decoder.
func (Decoder) Load(path native.CString, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp C.int
	p := C.stbi_load(cpath(path), &x, &y, &comp, C.int(reqComp))
	return result(unsafe.Pointer(p), x, y, comp)
}

// LoadFromMemory implements native.Decoder.
func (Decoder) LoadFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp C.int
	ptr, n := cbuf(data)
	p := C.stbi_load_from_memory(ptr, n, &x, &y, &comp, C.int(reqComp))
	return result(unsafe.Pointer(p), x, y, comp)
}

// LoadF implements native.Decoder.
func (Decoder) LoadF(path native.CString, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp C.int
	p := C.stbi_loadf(cpath(path), &x, &y, &comp, C.int(reqComp))
	return result(unsafe.Pointer(p), x, y, comp)
}

// LoadFFromMemory implements native.Decoder.
func (Decoder) LoadFFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	var x, y, comp C.int
	ptr, n := cbuf(data)
	p := C.stbi_loadf_from_memory(ptr, n, &x, &y, &comp, C.int(reqComp))
	return result(unsafe.Pointer(p), x, y, comp)
}

// Free implements native.Decoder.
func (Decoder) Free(buf native.Buffer) {
	if buf.IsNull() {
		return
	}
	C.stbi_image_free(buf.Pointer())
}

func cpath(path native.CString) *C.char {
	return (*C.char)(unsafe.Pointer(path.Ptr()))
}

// cbuf passes Go memory for the duration of one call, which cgo permits since the bytes hold
// no Go pointers.
func cbuf(data []byte) (*C.stbi_uc, C.int) {
	if len(data) == 0 {
		var empty [1]byte
		return (*C.stbi_uc)(unsafe.Pointer(&empty[0])), 0
	}
	return (*C.stbi_uc)(unsafe.Pointer(unsafe.SliceData(data))), C.int(len(data))
}

func result(p unsafe.Pointer, x, y, comp C.int) (native.Buffer, native.Info) {
	if p == nil {
		return native.Buffer{}, native.Info{}
	}
	return native.BufferAt(p), native.Info{Width: int(x), Height: int(y), Channels: int(comp)}
}
