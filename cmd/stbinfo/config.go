package main

import (
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-stbi/native"
)

// Environment variables read after the optional .env file is loaded. Flags win over them.
const (
	EnvBackend  = "STBINFO_BACKEND"
	EnvLogLevel = "STBINFO_LOG_LEVEL"
	EnvLogFile  = "STBINFO_LOG_FILE"
	EnvLibrary  = "STBI_LIBRARY_PATH"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the resolved command line.
type Config struct {
	Backend     native.Config
	Depth       int
	ConvertHDR  bool
	Memory      bool
	Format      string
	LogLevel    string
	LogFile     string
	EnvFile     string
	ShowVersion bool
	Stats       bool
	Inputs      []string
}

// parseConfig resolves flags, then fills anything left unset from the environment.
//
// Arguments:
// - args: Command line arguments without the program name.
// - stderr: Destination for usage output.
//
// Returns:
// - *Config: The resolved configuration.
// - error: An error if the flags are invalid or the env file cannot be read.
func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}
	var backend string

	fs := flag.NewFlagSet("stbinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&backend, "backend", "", "Decoder backend (default $"+EnvBackend+" or pure)")
	fs.IntVar(&cfg.Depth, "depth", 0, "Forced channel count, 0 for the file's own")
	fs.BoolVar(&cfg.ConvertHDR, "convert-hdr", false, "Decode HDR files to 8-bit samples")
	fs.BoolVar(&cfg.Memory, "memory", false, "Read each file and decode it from memory")
	fs.StringVar(&cfg.Format, "format", FormatText, "Output format: text, json or yaml")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (default $"+EnvLogLevel+" or warn)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this file, rotated")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Load environment variables from this file")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print the version and exit")
	fs.BoolVar(&cfg.Stats, "stats", false, "Print decode timing per result kind to stderr")
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, "usage: stbinfo [flags] <file-or-dir>...\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Inputs = fs.Args()

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", cfg.EnvFile)
		}
	}

	cfg.Backend = native.Config{
		Backend:     native.Backend(firstNonEmpty(backend, os.Getenv(EnvBackend))),
		LibraryPath: os.Getenv(EnvLibrary),
	}
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv(EnvLogLevel), "warn")
	cfg.LogFile = firstNonEmpty(cfg.LogFile, os.Getenv(EnvLogFile))

	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, errors.Errorf("unknown output format %q", cfg.Format)
	}
	if !cfg.ShowVersion && len(cfg.Inputs) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
