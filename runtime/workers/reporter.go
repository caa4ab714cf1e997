package workers

import (
	"context"
	"log/slog"
	"roster-lab/observability"
	"time"
)

// ReporterWorker periodically logs the engine stats snapshot.
type ReporterWorker struct {
	log        *slog.Logger
	monitoring *observability.Monitoring
	interval   time.Duration
}

func NewReporterWorker(log *slog.Logger, monitoring *observability.Monitoring, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{log: log, monitoring: monitoring, interval: interval}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.monitoring.Report()
		}
	}
}
