package output

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/metrics"
	"io"
	"os"
)

// Writes every payload to stdout as soon as it arrives
type DebugOutput struct {
	deps    Deps
	out     io.Writer
	metrics *sinkMetrics
}

func NewDebugOutput(cfg config.OutputConfig, deps Deps) (new *DebugOutput) {
	new = &DebugOutput{
		deps:    deps,
		out:     os.Stdout,
		metrics: newSinkMetrics("Debug"),
	}
	return
}

func (o *DebugOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *DebugOutput) Run(ctx context.Context) {
	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			return
		}
		if _, err := o.out.Write(o.deps.Framer.Frame(payload)); err != nil {
			return
		}
		o.metrics.Writes.Add(1)
		o.metrics.Batches.Add(1)
	}
}
