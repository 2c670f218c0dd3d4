// Package stbi - safe image loading over a native stb_image style decoder.
//
// The four load operations hand a path or a byte slice to a native.Decoder, copy the decoded
// pixels out of decoder-owned memory into an Image the caller owns, release the decoder's
// buffer, and report the outcome as a LoadResult:
//
//	switch res := stbi.Load("photo.png").(type) {
//	case *stbi.ImageU8:
//	    fmt.Println(res.Width(), res.Height(), res.Depth())
//	case *stbi.ImageF32:
//	    fmt.Println("hdr", res.Width(), res.Height())
//	case *stbi.Error:
//	    log.Println(res.Message)
//	}
//
// Radiance HDR sources decode to float32 samples unless the caller asks for conversion to
// 8-bit. A forced depth of 0 keeps the source's channel count; 1 to 4 converts to exactly
// that many channels.
//
// # Decoders
//
// The package-level functions use Default, which decodes with the pure Go backend, or with
// the cgo stb_image binding when built with -tags stb. NewLoader binds a Loader to any other
// backend or to a caller-supplied native.Decoder.
//
// # Concurrency
//
// Loads are synchronous and share no mutable state; a Loader may be used from many
// goroutines at once. Decoding cannot be cancelled once started.
package stbi
