package nativetest

import (
	"sync"
	"unsafe"

	"github.com/nvr-ai/go-stbi/native"
)

// Stub is a scripted decoder. Every decode call returns Info and, unless Fail is set, a
// buffer of Samples bytes (or Samples float32 values for LoadF calls) filled with Fill.
type Stub struct {
	// HDR is the answer to both IsHDR probes.
	HDR bool
	// Fail makes every decode call return the null buffer.
	Fail bool
	// Info is returned by every decode call.
	Info native.Info
	// Samples is the length of every returned buffer.
	Samples int
	// Fill is the value of every returned sample.
	Fill uint8

	mu   sync.Mutex
	live map[unsafe.Pointer]any
}

// Backend implements native.Decoder.
func (s *Stub) Backend() native.Backend {
	return "stub"
}

// IsHDR implements native.Decoder.
func (s *Stub) IsHDR(native.CString) bool {
	return s.HDR
}

// IsHDRFromMemory implements native.Decoder.
func (s *Stub) IsHDRFromMemory([]byte) bool {
	return s.HDR
}

// Load implements native.Decoder.
func (s *Stub) Load(native.CString, int) (native.Buffer, native.Info) {
	return s.bytes()
}

// LoadFromMemory implements native.Decoder.
func (s *Stub) LoadFromMemory([]byte, int) (native.Buffer, native.Info) {
	return s.bytes()
}

// LoadF implements native.Decoder.
func (s *Stub) LoadF(native.CString, int) (native.Buffer, native.Info) {
	return s.floats()
}

// LoadFFromMemory implements native.Decoder.
func (s *Stub) LoadFFromMemory([]byte, int) (native.Buffer, native.Info) {
	return s.floats()
}

// Free implements native.Decoder.
func (s *Stub) Free(buf native.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, buf.Pointer())
}

func (s *Stub) bytes() (native.Buffer, native.Info) {
	if s.Fail {
		return native.Buffer{}, native.Info{}
	}
	pix := make([]byte, s.Samples+1)
	for i := range pix {
		pix[i] = s.Fill
	}
	return s.keep(unsafe.Pointer(&pix[0]), pix), s.Info
}

func (s *Stub) floats() (native.Buffer, native.Info) {
	if s.Fail {
		return native.Buffer{}, native.Info{}
	}
	pix := make([]float32, s.Samples+1)
	for i := range pix {
		pix[i] = float32(s.Fill) / 255
	}
	return s.keep(unsafe.Pointer(&pix[0]), pix), s.Info
}

func (s *Stub) keep(p unsafe.Pointer, v any) native.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		s.live = make(map[unsafe.Pointer]any)
	}
	s.live[p] = v
	return native.BufferAt(p)
}
