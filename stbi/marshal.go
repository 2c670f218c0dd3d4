package stbi

import (
	"strings"
	"unicode/utf8"

	"github.com/nvr-ai/go-stbi/native"
)

// emptyInput gives zero-length inputs a valid backing pointer.
var emptyInput [1]byte

// marshalPath converts path to the NUL-terminated form the decoder's path entry points take.
func marshalPath(path string) (native.CString, *Error) {
	if !utf8.ValidString(path) {
		return nil, newError(MsgPathNotText)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return nil, newError(MsgPathHasNUL)
	}

	cpath := make(native.CString, len(path)+1)
	copy(cpath, path)
	return cpath, nil
}

// marshalMemory checks that data fits the decoder's length parameter. The result is never a
// nil slice, so its backing pointer is valid even when it is empty. Binary data is passed
// with its explicit length and may contain NUL bytes.
func marshalMemory(data []byte) ([]byte, *Error) {
	if len(data) > native.MaxInputLen {
		return nil, newError(MsgInputTooLarge)
	}
	if len(data) == 0 {
		return emptyInput[:0], nil
	}
	return data, nil
}

// checkDepth rejects forced depths the decoder would abort on.
func checkDepth(forcedDepth int) *Error {
	if forcedDepth < 0 || forcedDepth > native.MaxChannels {
		return newError(MsgDepthOutOfRange)
	}
	return nil
}
