//go:build stb && cgo

package stbi

import (
	"github.com/nvr-ai/go-stbi/native"
	_ "github.com/nvr-ai/go-stbi/native/stb" // Register the cgo stb_image backend
)

func init() {
	defaultBackend = native.BackendSTB
}
