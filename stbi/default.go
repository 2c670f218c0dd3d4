package stbi

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/native"
	"github.com/nvr-ai/go-stbi/native/pure"
)

// defaultBackend is replaced by build-tagged files that link a native library.
var defaultBackend = native.BackendPure

var (
	defaultOnce   sync.Once
	defaultLoader *Loader
)

// Default returns the Loader behind the package-level functions. If the preferred backend
// cannot be opened it falls back to the pure Go decoder.
func Default() *Loader {
	defaultOnce.Do(func() {
		l, err := NewLoader(WithBackend(native.Config{Backend: defaultBackend}))
		if err != nil {
			l = &Loader{decoder: pure.New(), logger: zap.NewNop()}
		}
		defaultLoader = l
	})
	return defaultLoader
}

// Load decodes the image at path with Default. See Loader.Load.
func Load(path string) LoadResult {
	return Default().Load(path)
}

// LoadWithDepth decodes the image at path with Default. See Loader.LoadWithDepth.
func LoadWithDepth(path string, forcedDepth int, convertHDR bool) LoadResult {
	return Default().LoadWithDepth(path, forcedDepth, convertHDR)
}

// LoadFromMemory decodes data with Default. See Loader.LoadFromMemory.
func LoadFromMemory(data []byte) LoadResult {
	return Default().LoadFromMemory(data)
}

// LoadFromMemoryWithDepth decodes data with Default. See Loader.LoadFromMemoryWithDepth.
func LoadFromMemoryWithDepth(data []byte, forcedDepth int, convertHDR bool) LoadResult {
	return Default().LoadFromMemoryWithDepth(data, forcedDepth, convertHDR)
}
