// Package stbdl opens the stb_image shared library at runtime with purego and registers it as
// the "stbdl" backend. No cgo toolchain is needed to build it; the library must be present
// when the backend is opened.
//
// The library is looked up at Config.LibraryPath, then STBI_LIBRARY_PATH, then under the
// platform's default names.
package stbdl
