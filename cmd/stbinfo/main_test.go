package main

import (
	"bytes"
	"encoding/json"
	"image"
	imgcolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvBackend, EnvLogLevel, EnvLogFile, EnvLibrary} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(0, 0, imgcolor.RGBA{R: 1, G: 2, B: 3, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRunJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 26, 37)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "json", "-depth", "4", dir}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var records []Record
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "u8", records[0].Kind)
	assert.Equal(t, 26, records[0].Width)
	assert.Equal(t, 37, records[0].Height)
	assert.Equal(t, 4, records[0].Depth)
	assert.Equal(t, 3848, records[0].Samples)
}

func TestRunMemoryYAMLWithFailure(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"), 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.jpg"), []byte("nope"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-memory", "-format", "yaml", "-log-level", "error", dir}, &stdout, &stderr)
	assert.Equal(t, 1, code)

	var records []Record
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "error", records[0].Kind)
	assert.Equal(t, "stbi_load_from_memory failed", records[0].Message)
	assert.Equal(t, "u8", records[1].Kind)
	assert.Equal(t, 12, records[1].Samples)
}

func TestRunText(t *testing.T) {
	clearEnv(t)
	color.NoColor = true
	path := filepath.Join(t.TempDir(), "one.png")
	writePNG(t, path, 3, 1)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-stats", path}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "one.png: u8 3x1x3 (9 samples)")
	assert.Contains(t, stderr.String(), "u8     count=1")
}

func TestRunUsageErrors(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-format", "xml", "x.png"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-backend", "nosuch", "x.png"}, &stdout, &stderr))

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Equal(t, "stbinfo dev\n", stdout.String())
}

func TestParseConfigEnv(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STBINFO_BACKEND=stbdl\nSTBI_LIBRARY_PATH=/opt/lib/libstb.so\n"), 0o600))

	cfg, err := parseConfig([]string{"-env-file", envFile, "img.png"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "stbdl", string(cfg.Backend.Backend))
	assert.Equal(t, "/opt/lib/libstb.so", cfg.Backend.LibraryPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"img.png"}, cfg.Inputs)

	cfg, err = parseConfig([]string{"-env-file", envFile, "-backend", "pure", "img.png"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "pure", string(cfg.Backend.Backend))
}
