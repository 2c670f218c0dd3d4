package native

import (
	"fmt"
	"regexp"
)

// Backend names a decoder implementation.
type Backend string

const (
	// BackendPure is the Go implementation of the stb_image contract.
	BackendPure Backend = "pure"
	// BackendSTB links the system stb_image library through cgo.
	BackendSTB Backend = "stb"
	// BackendSTBDL opens the stb_image shared library at runtime.
	BackendSTBDL Backend = "stbdl"
	// BackendOpenCV decodes through OpenCV imgcodecs.
	BackendOpenCV Backend = "opencv"
)

// DefaultBackend is used when a Config names no backend.
const DefaultBackend = BackendPure

var backendName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Config selects and configures a decoder backend.
type Config struct {
	// Backend specifies the backend to open.
	Backend Backend `json:"backend" yaml:"backend"`

	// LibraryPath overrides the shared library location for backends that load one at runtime.
	LibraryPath string `json:"library_path,omitempty" yaml:"library_path,omitempty"`
}

// NewConfig validates args and fills in defaults.
//
// Arguments:
// - args: The requested configuration.
//
// Returns:
// - *Config: The validated configuration.
// - error: An error if the backend name is malformed.
func NewConfig(args Config) (*Config, error) {
	if args.Backend == "" {
		args.Backend = DefaultBackend
	}

	if !backendName.MatchString(string(args.Backend)) {
		return nil, fmt.Errorf("%w: malformed backend name %q", ErrUnknownBackend, args.Backend)
	}

	return &Config{
		Backend:     args.Backend,
		LibraryPath: args.LibraryPath,
	}, nil
}
