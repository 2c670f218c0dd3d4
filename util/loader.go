// Package util collects the input files the stbinfo command decodes.
package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageFormat names an encoded image format by its usual file extension.
type ImageFormat string

// Formats the decoders accept.
const (
	FormatJPEG     ImageFormat = "jpeg"
	FormatPNG      ImageFormat = "png"
	FormatBMP      ImageFormat = "bmp"
	FormatGIF      ImageFormat = "gif"
	FormatTIFF     ImageFormat = "tiff"
	FormatWebP     ImageFormat = "webp"
	FormatRadiance ImageFormat = "hdr"
	FormatPNM      ImageFormat = "pnm"
	FormatPSD      ImageFormat = "psd"
	FormatTGA      ImageFormat = "tga"
)

var extensions = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWebP,
	".hdr":  FormatRadiance,
	".pic":  FormatRadiance,
	".pgm":  FormatPNM,
	".ppm":  FormatPNM,
	".psd":  FormatPSD,
	".tga":  FormatTGA,
}

// FormatOf returns the format implied by the extension of path.
//
// Arguments:
// - path: File name or path.
//
// Returns:
// - ImageFormat: The format, or "" if the extension is not an image extension.
// - bool: Whether the extension was recognised.
func FormatOf(path string) (ImageFormat, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// ImageFile is an image file found on disk.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Format is the format implied by the file extension.
	Format ImageFormat
	// Size is the file size in bytes.
	Size int64
}

// ListImageFiles expands args into image files. Plain files are returned as given whatever
// their extension; directories contribute their image files (not recursively) in name order.
//
// Arguments:
// - args: File and directory paths.
//
// Returns:
// - []ImageFile: The files, in argument order.
// - error: Error if an argument cannot be read.
func ListImageFiles(args ...string) ([]ImageFile, error) {
	var files []ImageFile
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			format, _ := FormatOf(arg)
			files = append(files, ImageFile{Path: arg, Format: format, Size: info.Size()})
			continue
		}

		dir, err := listDirectory(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, dir...)
	}
	return files, nil
}

func listDirectory(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := FormatOf(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, ImageFile{
			Path:   filepath.Join(dir, entry.Name()),
			Format: format,
			Size:   info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
