package native

import (
	"math"
	"unsafe"
)

// Entry point names, used to identify which call failed.
const (
	EntryLoad            = "stbi_load"
	EntryLoadFromMemory  = "stbi_load_from_memory"
	EntryLoadF           = "stbi_loadf"
	EntryLoadFFromMemory = "stbi_loadf_from_memory"
)

// MaxInputLen is the largest in-memory input the decoder length parameter can describe.
const MaxInputLen = math.MaxInt32

// MaxChannels is the largest channel count a decode call may be asked to produce.
const MaxChannels = 4

// CString is a NUL-terminated byte string in the form the path entry points expect.
type CString []byte

// Ptr returns a pointer to the first byte of the string.
func (s CString) Ptr() *byte {
	return &s[0]
}

// String returns the path without its terminator.
func (s CString) String() string {
	if len(s) == 0 {
		return ""
	}
	return string(s[:len(s)-1])
}

// Buffer is a pixel allocation owned by a Decoder. The zero Buffer is the null result.
type Buffer struct {
	ptr unsafe.Pointer
}

// BufferAt wraps a decoder allocation.
func BufferAt(p unsafe.Pointer) Buffer {
	return Buffer{ptr: p}
}

// IsNull reports whether the decode call failed.
func (b Buffer) IsNull() bool {
	return b.ptr == nil
}

// Pointer returns the start of the allocation. It must not be used after Free.
func (b Buffer) Pointer() unsafe.Pointer {
	return b.ptr
}

// Info holds the out-parameters of a decode call.
type Info struct {
	// Width of the decoded image in pixels.
	Width int
	// Height of the decoded image in pixels.
	Height int
	// Channels is the channel count of the source image, before any forced conversion.
	Channels int
}

// Decoder is the contract every native backend implements.
//
// reqComp is the forced channel count (0 lets the decoder pick). Decode calls return a null
// Buffer on failure. A non-null Buffer holds Width*Height*n samples, where n is reqComp when
// non-zero and Info.Channels otherwise; samples are bytes for Load calls and float32 for LoadF
// calls. Every non-null Buffer must be passed to Free exactly once.
type Decoder interface {
	Backend() Backend
	IsHDR(path CString) bool
	IsHDRFromMemory(data []byte) bool
	Load(path CString, reqComp int) (Buffer, Info)
	LoadFromMemory(data []byte, reqComp int) (Buffer, Info)
	LoadF(path CString, reqComp int) (Buffer, Info)
	LoadFFromMemory(data []byte, reqComp int) (Buffer, Info)
	Free(buf Buffer)
}
