package native

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownBackend is returned when no backend is registered under the requested name.
	ErrUnknownBackend = errors.New("native: unknown decoder backend")
	// ErrBackendUnavailable is returned when a backend is registered but cannot be opened,
	// typically because its shared library is missing.
	ErrBackendUnavailable = errors.New("native: decoder backend unavailable")
)

// Constructor opens a decoder for a validated Config.
type Constructor func(cfg Config) (Decoder, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[Backend]Constructor)
)

// Register makes a backend available to Open. It panics if the name is registered twice,
// since that means two backends were linked under the same name.
func Register(backend Backend, open Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if open == nil {
		panic("native: Register constructor is nil")
	}
	if _, dup := registry[backend]; dup {
		panic(fmt.Sprintf("native: Register called twice for backend %q", backend))
	}
	registry[backend] = open
}

// Open creates a decoder for the backend named in cfg.
//
// Arguments:
// - cfg: The backend configuration. An empty Backend selects DefaultBackend.
//
// Returns:
// - Decoder: The opened decoder.
// - error: ErrUnknownBackend if the backend is not linked into the binary, or the
//   backend's own error wrapped with ErrBackendUnavailable.
func Open(cfg Config) (Decoder, error) {
	valid, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	open, ok := registry[valid.Backend]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownBackend, valid.Backend, Backends())
	}

	dec, err := open(*valid)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, valid.Backend, err)
	}
	return dec, nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]Backend, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
