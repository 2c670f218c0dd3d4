//go:build linux && !android

package stbdl

import (
	"debug/elf"
	"os"
)

var libraryNames = []string{"libstb.so", "libstb.so.0"}

func isDynamicBinary() bool {
	name, err := os.Executable()
	if err != nil {
		return false
	}

	f, err := elf.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.DynamicSymbols()
	return err == nil
}
