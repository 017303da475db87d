package output

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"time"

	"github.com/nats-io/nats.go"
)

// Publishes one payload per NATS message, no batching.
// The downstream is typically another flowgger draining the subject.
type NATSOutput struct {
	cfg     config.OutputConfig
	deps    Deps
	metrics *sinkMetrics
}

func NewNATSOutput(cfg config.OutputConfig, deps Deps) (new *NATSOutput) {
	new = &NATSOutput{
		cfg:     cfg,
		deps:    deps,
		metrics: newSinkMetrics("NATS"),
	}
	return
}

func (o *NATSOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *NATSOutput) Run(ctx context.Context) {
	conn, err := nats.Connect(o.cfg.NATSURL,
		nats.Name(global.ProgBaseName),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"unable to connect to NATS at %s: %v\n", o.cfg.NATSURL, err)
		return
	}
	defer func() {
		_ = conn.Flush()
		conn.Close()
	}()

	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			return
		}
		if err := conn.Publish(o.cfg.NATSSubject, o.deps.Framer.Frame(payload)); err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"failed to publish to NATS: %v\n", err)
			o.metrics.Drops.Add(1)
			continue
		}
		o.metrics.Writes.Add(1)
		o.metrics.Batches.Add(1)
	}
}
