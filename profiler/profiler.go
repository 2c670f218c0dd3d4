// Package profiler collects per-operation timing statistics for decode runs.
package profiler

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats summarizes the recorded durations of one operation.
type Stats struct {
	Name  string        `json:"name" yaml:"name"`
	Count int64         `json:"count" yaml:"count"`
	Total time.Duration `json:"total" yaml:"total"`
	Min   time.Duration `json:"min" yaml:"min"`
	Max   time.Duration `json:"max" yaml:"max"`
}

// Mean returns the average duration, or zero when nothing was recorded.
func (s Stats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Profiler tracks operation timings. It is safe for concurrent use.
type Profiler struct {
	mu  sync.Mutex
	ops map[string]*Stats
}

// New creates an empty Profiler.
func New() *Profiler {
	return &Profiler{ops: make(map[string]*Stats)}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track.
//
// Returns:
// - A function to call when the operation completes.
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one duration for name.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.ops[name]
	if !ok {
		s = &Stats{Name: name, Min: d, Max: d}
		p.ops[name] = s
	}
	s.Count++
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

// Snapshot returns the statistics of every operation, sorted by name.
func (p *Profiler) Snapshot() []Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Stats, 0, len(p.ops))
	for _, s := range p.ops {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Log writes one info entry per operation.
func (p *Profiler) Log(logger *zap.Logger) {
	for _, s := range p.Snapshot() {
		logger.Info("operation timing",
			zap.String("operation", s.Name),
			zap.Int64("count", s.Count),
			zap.Duration("mean", s.Mean()),
			zap.Duration("min", s.Min),
			zap.Duration("max", s.Max),
		)
	}
}
