// Command stbinfo decodes image files and reports their dimensions and sample layout.
//
//	stbinfo -depth 4 -format json testdata/
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-stbi/logging"
	_ "github.com/nvr-ai/go-stbi/native/opencv" // Register the gocv backend when built with -tags gocv
	_ "github.com/nvr-ai/go-stbi/native/stb"    // Register the cgo backend when built with -tags stb
	_ "github.com/nvr-ai/go-stbi/native/stbdl"  // Register the runtime-loaded backend
	"github.com/nvr-ai/go-stbi/profiler"
	"github.com/nvr-ai/go-stbi/stbi"
	"github.com/nvr-ai/go-stbi/util"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "stbinfo: %v\n", err)
		return 2
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "stbinfo %s\n", version)
		return 0
	}

	logger, err := logging.NewLogger(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(stderr, "stbinfo: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	loader, err := stbi.NewLoader(stbi.WithBackend(cfg.Backend), stbi.WithLogger(logger))
	if err != nil {
		logger.Error("cannot open decoder", zap.String("backend", string(cfg.Backend.Backend)), zap.Error(err))
		return 2
	}

	files, err := util.ListImageFiles(cfg.Inputs...)
	if err != nil {
		logger.Error("cannot list inputs", zap.Error(err))
		return 2
	}

	prof := profiler.New()
	records := make([]Record, 0, len(files))
	failed := false
	for _, f := range files {
		rec := loadOne(loader, cfg, f.Path)
		prof.Record(rec.Kind, rec.Elapsed)
		if rec.Failed() {
			failed = true
			logger.Warn("decode failed", zap.String("path", rec.Path), zap.String("message", rec.Message))
		}
		records = append(records, rec)
	}

	if err := writeRecords(stdout, cfg.Format, records); err != nil {
		logger.Error("cannot write report", zap.Error(err))
		return 2
	}
	if cfg.Stats {
		writeStats(stderr, prof.Snapshot())
	}
	prof.Log(logger)
	if failed {
		return 1
	}
	return 0
}

func loadOne(loader *stbi.Loader, cfg *Config, path string) Record {
	start := time.Now()

	if !cfg.Memory {
		res := loader.LoadWithDepth(path, cfg.Depth, cfg.ConvertHDR)
		return newRecord(path, res, time.Since(start))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Record{Path: path, Kind: "error", Message: errors.Wrap(err, "read").Error(), Elapsed: time.Since(start)}
	}
	res := loader.LoadFromMemoryWithDepth(data, cfg.Depth, cfg.ConvertHDR)
	return newRecord(path, res, time.Since(start))
}
