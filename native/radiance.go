package native

import (
	"bytes"
	"io"
	"os"
)

// RadianceHeaderLen is the number of leading bytes IsRadianceHeader needs to decide.
const RadianceHeaderLen = len("#?RADIANCE\n")

var radianceSignatures = [][]byte{
	[]byte("#?RADIANCE\n"),
	[]byte("#?RGBE\n"),
}

// IsRadianceHeader reports whether header starts with a Radiance RGBE signature, the only
// format the stb_image contract treats as HDR. It is the probe for backends that lack one.
func IsRadianceHeader(header []byte) bool {
	for _, sig := range radianceSignatures {
		if bytes.HasPrefix(header, sig) {
			return true
		}
	}
	return false
}

// IsRadianceFile reads the first bytes of the file at path and checks them with
// IsRadianceHeader. Files that cannot be read are not HDR.
func IsRadianceFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, RadianceHeaderLen)
	n, _ := io.ReadFull(f, header)
	return IsRadianceHeader(header[:n])
}
