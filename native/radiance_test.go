package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRadianceHeader(t *testing.T) {
	assert.True(t, IsRadianceHeader([]byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n")))
	assert.True(t, IsRadianceHeader([]byte("#?RGBE\n")))
	assert.False(t, IsRadianceHeader([]byte("#?RADIANCE")))
	assert.False(t, IsRadianceHeader([]byte("\x89PNG\r\n\x1a\n")))
	assert.False(t, IsRadianceHeader(nil))
}

func TestIsRadianceFile(t *testing.T) {
	dir := t.TempDir()
	hdr := filepath.Join(dir, "a.hdr")
	short := filepath.Join(dir, "b.hdr")
	require.NoError(t, os.WriteFile(hdr, []byte("#?RADIANCE\n\n-Y 1 +X 1\n"), 0o600))
	require.NoError(t, os.WriteFile(short, []byte("#?RGBE\n"), 0o600))

	assert.True(t, IsRadianceFile(hdr))
	assert.True(t, IsRadianceFile(short))
	assert.False(t, IsRadianceFile(filepath.Join(dir, "missing.hdr")))
}

func TestCString(t *testing.T) {
	s := CString("img.png\x00")
	assert.Equal(t, "img.png", s.String())
	assert.Equal(t, byte('i'), *s.Ptr())
	assert.Equal(t, "", CString(nil).String())
}
