//go:build darwin

package stbdl

var libraryNames = []string{"libstb.dylib", "/opt/homebrew/lib/libstb.dylib", "/usr/local/lib/libstb.dylib"}

func isDynamicBinary() bool {
	return true
}
