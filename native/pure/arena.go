package pure

import (
	"sync"
	"unsafe"

	"github.com/nvr-ai/go-stbi/native"
)

// arena keeps decoder-owned slices reachable until they are freed.
type arena struct {
	mu   sync.Mutex
	live map[unsafe.Pointer]any
}

func newArena() *arena {
	return &arena{live: make(map[unsafe.Pointer]any)}
}

// adopt hands ownership of pix to the arena and returns the Buffer that stands for it.
func adopt[T uint8 | float32](a *arena, pix []T) native.Buffer {
	if cap(pix) == 0 {
		// A zero-area image still needs a non-null pointer to signal success.
		pix = make([]T, 0, 1)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(pix))

	a.mu.Lock()
	a.live[ptr] = pix
	a.mu.Unlock()

	return native.BufferAt(ptr)
}

// release drops the arena's reference. Releasing an unknown or already released buffer is a
// double free and panics.
func (a *arena) release(buf native.Buffer) {
	if buf.IsNull() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.live[buf.Pointer()]; !ok {
		panic("pure: Free of a buffer this decoder does not own")
	}
	delete(a.live, buf.Pointer())
}

func (a *arena) outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
