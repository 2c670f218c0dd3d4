package stbi

// LoadResult is the outcome of a load. It is exactly one of *ImageU8, *ImageF32 or *Error;
// no other type can implement it.
type LoadResult interface {
	loadResult()
}

// Messages carried by Error for input that is rejected before the decoder is called.
const (
	MsgPathNotText     = "path is not valid text"
	MsgPathHasNUL      = "path contains an embedded null byte"
	MsgDepthOutOfRange = "forced depth must be between 0 and 4"
	MsgInputTooLarge   = "input is too large"
)

// Error is the failed LoadResult. Decode failures carry the name of the native entry point,
// e.g. "stbi_load_from_memory failed".
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func (*Error) loadResult() {}

func newError(msg string) *Error {
	return &Error{Message: msg}
}

// Kind returns "u8", "f32" or "error" for res, for logs and reports. A nil res, which no
// load operation returns, is "unknown".
func Kind(res LoadResult) string {
	switch res.(type) {
	case *ImageU8:
		return "u8"
	case *ImageF32:
		return "f32"
	case *Error:
		return "error"
	}
	return "unknown"
}

// AsError returns the failure carried by res, or nil when res is an image.
func AsError(res LoadResult) error {
	if e, ok := res.(*Error); ok && e != nil {
		return e
	}
	return nil
}
