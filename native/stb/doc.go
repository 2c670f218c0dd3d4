// Package stb links the system stb_image library through cgo and registers it as the "stb"
// backend. It is compiled only with the stb build tag and cgo enabled; the library is found
// through pkg-config.
//
//	go build -tags stb ./...
package stb
