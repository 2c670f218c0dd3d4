// Package nativetest provides native.Decoder wrappers for testing code that drives a decoder.
package nativetest

import (
	"sync"

	"github.com/nvr-ai/go-stbi/native"
)

// Call identifies a Decoder method.
type Call string

// Decoder methods as recorded by Recorder.
const (
	CallIsHDR           Call = "IsHDR"
	CallIsHDRFromMemory Call = "IsHDRFromMemory"
	CallLoad            Call = native.EntryLoad
	CallLoadFromMemory  Call = native.EntryLoadFromMemory
	CallLoadF           Call = native.EntryLoadF
	CallLoadFFromMemory Call = native.EntryLoadFFromMemory
	CallFree            Call = "Free"
)

// Recorder wraps a Decoder and records every call made through it. It also tracks which
// buffers are live so tests can assert that each one was freed exactly once.
type Recorder struct {
	native.Decoder

	mu     sync.Mutex
	calls  []Call
	live   map[native.Buffer]int
	frees  int
	double int
	// ReqComps holds the reqComp argument of every decode call, in order.
	ReqComps []int
}

// NewRecorder wraps dec.
func NewRecorder(dec native.Decoder) *Recorder {
	return &Recorder{
		Decoder: dec,
		live:    make(map[native.Buffer]int),
	}
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Recorder) decoded(c Call, reqComp int, buf native.Buffer, info native.Info) (native.Buffer, native.Info) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, c)
	r.ReqComps = append(r.ReqComps, reqComp)
	if !buf.IsNull() {
		r.live[buf]++
	}
	return buf, info
}

// IsHDR implements native.Decoder.
func (r *Recorder) IsHDR(path native.CString) bool {
	r.record(CallIsHDR)
	return r.Decoder.IsHDR(path)
}

// IsHDRFromMemory implements native.Decoder.
func (r *Recorder) IsHDRFromMemory(data []byte) bool {
	r.record(CallIsHDRFromMemory)
	return r.Decoder.IsHDRFromMemory(data)
}

// Load implements native.Decoder.
func (r *Recorder) Load(path native.CString, reqComp int) (native.Buffer, native.Info) {
	buf, info := r.Decoder.Load(path, reqComp)
	return r.decoded(CallLoad, reqComp, buf, info)
}

// LoadFromMemory implements native.Decoder.
func (r *Recorder) LoadFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	buf, info := r.Decoder.LoadFromMemory(data, reqComp)
	return r.decoded(CallLoadFromMemory, reqComp, buf, info)
}

// LoadF implements native.Decoder.
func (r *Recorder) LoadF(path native.CString, reqComp int) (native.Buffer, native.Info) {
	buf, info := r.Decoder.LoadF(path, reqComp)
	return r.decoded(CallLoadF, reqComp, buf, info)
}

// LoadFFromMemory implements native.Decoder.
func (r *Recorder) LoadFFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	buf, info := r.Decoder.LoadFFromMemory(data, reqComp)
	return r.decoded(CallLoadFFromMemory, reqComp, buf, info)
}

// Free implements native.Decoder. A buffer freed more often than it was returned is counted
// as a double free and not forwarded.
func (r *Recorder) Free(buf native.Buffer) {
	r.mu.Lock()
	r.calls = append(r.calls, CallFree)
	r.frees++
	if !buf.IsNull() {
		if r.live[buf] == 0 {
			r.double++
			r.mu.Unlock()
			return
		}
		r.live[buf]--
		if r.live[buf] == 0 {
			delete(r.live, buf)
		}
	}
	r.mu.Unlock()

	r.Decoder.Free(buf)
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many times c was called.
func (r *Recorder) Count(c Call) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, got := range r.calls {
		if got == c {
			n++
		}
	}
	return n
}

// Outstanding returns the number of non-null buffers not yet freed.
func (r *Recorder) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, count := range r.live {
		n += count
	}
	return n
}

// DoubleFrees returns the number of Free calls on buffers that were not live.
func (r *Recorder) DoubleFrees() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.double
}
