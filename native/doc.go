// Package native - the foreign image decoder surface consumed by package stbi.
//
// A Decoder exposes the fixed set of stb_image entry points the loader needs: two HDR probes,
// four decode calls (8-bit / float, path / memory) and a release routine. Decode calls hand back
// a Buffer that is owned by the decoder until it is passed to Free.
//
// # Backends
//
// Backends live in sub-packages and register themselves from init, the same way image formats
// register with the image package:
//
//   - pure: a Go implementation of the stb_image contract (always available).
//   - stb: cgo binding to the system stb_image library (build with -tags stb).
//   - stbdl: loads libstb at runtime through purego, no cgo required.
//   - opencv: OpenCV imgcodecs through gocv (build with -tags gocv).
//
// Use Open with a Config to obtain a registered backend:
//
//	dec, err := native.Open(native.Config{Backend: native.BackendPure})
//	if err != nil {
//	    return err
//	}
package native
