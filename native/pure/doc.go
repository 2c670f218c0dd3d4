// Package pure - a Go implementation of the stb_image decoder contract.
//
// The decoder behaves like the native library from the caller's point of view: decode calls
// return a decoder-owned Buffer that must be handed back to Free, channel counts follow the
// stb_image rules, forced channel conversion uses the same luminance weights, and Radiance
// RGBE files are the only HDR format. Allocations are tracked in an arena so tests can verify
// that every buffer is released exactly once.
//
// Supported formats are the ones registered with the image package by this package's
// imports: PNG, JPEG, GIF, BMP, TIFF and WebP, plus Radiance .hdr.
//
// The backend registers itself as native.BackendPure.
package pure
