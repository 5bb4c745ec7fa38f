// Package debug logs runtime statistics while a debug session is active.
package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// Sample is one reading of the runtime counters.
type Sample struct {
	Goroutines uint64
	HeapAlloc  uint64
	StackInuse uint64
	NumGC      uint32
	RSS        uint64 // zero where the platform does not report it
}

// Read collects a Sample.
func Read() Sample {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Sample{
		Goroutines: samples[0].Value.Uint64(),
		HeapAlloc:  ms.HeapAlloc,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
	if rss, ok := residentBytes(); ok {
		s.RSS = rss
	}
	return s
}

// LogValue renders byte counts for humans.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("goroutines", s.Goroutines),
		slog.String("heap_alloc", humanize.IBytes(s.HeapAlloc)),
		slog.String("stack_inuse", humanize.IBytes(s.StackInuse)),
		slog.Uint64("num_gc", uint64(s.NumGC)),
		slog.String("rss", humanize.IBytes(s.RSS)),
	)
}

// StartRuntimeLogger logs a Sample every interval until ctx is done. Captures
// hold full screen-sized buffers, so heap growth across long runs shows here
// first.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Info("runtime", "stats", Read())
			}
		}
	}()
}
