package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-stbi/profiler"
	"github.com/nvr-ai/go-stbi/stbi"
)

// Record describes the result of loading one input.
type Record struct {
	Path    string        `json:"path" yaml:"path"`
	Kind    string        `json:"kind" yaml:"kind"`
	Width   int           `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int           `json:"height,omitempty" yaml:"height,omitempty"`
	Depth   int           `json:"depth,omitempty" yaml:"depth,omitempty"`
	Samples int           `json:"samples,omitempty" yaml:"samples,omitempty"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Failed reports whether the input could not be decoded.
func (r Record) Failed() bool {
	return r.Kind == "error"
}

func newRecord(path string, res stbi.LoadResult, elapsed time.Duration) Record {
	rec := Record{Path: path, Kind: stbi.Kind(res), Elapsed: elapsed}
	switch v := res.(type) {
	case *stbi.ImageU8:
		rec.Width, rec.Height, rec.Depth, rec.Samples = v.Width(), v.Height(), v.Depth(), v.Len()
	case *stbi.ImageF32:
		rec.Width, rec.Height, rec.Depth, rec.Samples = v.Width(), v.Height(), v.Depth(), v.Len()
	case *stbi.Error:
		rec.Message = v.Message
	}
	return rec
}

// writeRecords renders records in the requested format.
func writeRecords(w io.Writer, format string, records []Record) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, records)
	}
}

func writeText(w io.Writer, records []Record) error {
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()

	for _, r := range records {
		var line string
		if r.Failed() {
			line = fmt.Sprintf("%s: %s %s\n", r.Path, bad("error"), r.Message)
		} else {
			line = fmt.Sprintf("%s: %s %dx%dx%d (%d samples) in %s\n",
				r.Path, good(r.Kind), r.Width, r.Height, r.Depth, r.Samples, r.Elapsed.Round(time.Microsecond))
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(w io.Writer, stats []profiler.Stats) {
	for _, s := range stats {
		fmt.Fprintf(w, "%-6s count=%d mean=%s min=%s max=%s\n",
			s.Name, s.Count, s.Mean().Round(time.Microsecond), s.Min.Round(time.Microsecond), s.Max.Round(time.Microsecond))
	}
}
