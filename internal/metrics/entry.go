package metrics

import (
	"context"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"strings"
	"time"
)

// Periodically collects from all registered components and reports through the logger.
// Blocks until the context is canceled.
func Report(ctx context.Context, interval time.Duration, collectors []Collector) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, collector := range collectors {
			for _, metric := range collector.CollectMetrics(interval) {
				logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
					"%s %s=%d %s (%s)\n",
					strings.Join(metric.Namespace, "/"), metric.Name,
					metric.Value.Raw, metric.Value.Unit, metric.Type)
			}
		}
	}
}
