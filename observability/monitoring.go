package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Monitoring aggregates engine counters for the reporter worker and the
// debug inspector. Counters are atomic; services increment them directly.
type Monitoring struct {
	log       *slog.Logger
	startedAt time.Time

	Loads            atomic.Uint64
	PartialLoads     atomic.Uint64
	Toggles          atomic.Uint64
	Reverts          atomic.Uint64
	ResolutionMisses atomic.Uint64
}

func NewMonitoring(log *slog.Logger) *Monitoring {
	return &Monitoring{log: log, startedAt: time.Now()}
}

// Snapshot flattens the counters plus process telemetry into the map shape
// the debug inspector renders.
func (m *Monitoring) Snapshot() map[string]any {
	stats := map[string]any{
		"Uptime":           time.Since(m.startedAt).Round(time.Second).String(),
		"Loads":            m.Loads.Load(),
		"PartialLoads":     m.PartialLoads.Load(),
		"Toggles":          m.Toggles.Load(),
		"Reverts":          m.Reverts.Load(),
		"ResolutionMisses": m.ResolutionMisses.Load(),
		"Goroutines":       runtime.NumGoroutine(),
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["AllocMemMb"] = memStats.Alloc / 1024 / 1024
	stats["NumGC"] = memStats.NumGC

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil {
			stats["RssMb"] = memInfo.RSS / 1024 / 1024
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			stats["CpuPercent"] = cpu
		}
	}
	return stats
}

// Report logs the current snapshot. Called periodically by the reporter
// worker.
func (m *Monitoring) Report() {
	attrs := make([]any, 0, 16)
	for key, value := range m.Snapshot() {
		attrs = append(attrs, key, value)
	}
	m.log.Info("engine stats", attrs...)
}
