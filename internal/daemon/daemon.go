// Daemon for continuous ingestion of log records, transformation to the
// configured output format, and batched delivery to the configured sink
package daemon

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/decoder"
	"flowgger/internal/encoder"
	"flowgger/internal/framer"
	"flowgger/internal/global"
	"flowgger/internal/input"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"flowgger/internal/output"
	"flowgger/internal/queue/broker"
	"flowgger/internal/syslog"
	"fmt"
	"time"
)

type Daemon struct {
	cfg config.Config

	queue      *broker.Broker
	input      input.Input
	output     output.Output
	collectors []metrics.Collector
}

// Create new daemon instance
func NewDaemon(cfg config.Config) (new *Daemon) {
	new = &Daemon{
		cfg: cfg,
	}
	return
}

// Builds the pipeline from the configuration: one broker, one input driver,
// one sink, with the decoder, encoder and framer fixed for the lifetime of
// the process
func (daemon *Daemon) setup(ctx context.Context) (err error) {
	syslog.InitBidiMaps()

	daemon.queue, err = broker.New([]string{global.ProgBaseName}, daemon.cfg.Input.QueueSize)
	if err != nil {
		return
	}

	dec, err := decoder.New(daemon.cfg.Input)
	if err != nil {
		return
	}
	enc, err := encoder.New(daemon.cfg.Output)
	if err != nil {
		return
	}
	frm, err := framer.New(daemon.cfg.Output.Framing)
	if err != nil {
		return
	}

	daemon.output, err = output.New(daemon.cfg.Output, output.Deps{
		Queue:  daemon.queue,
		Framer: frm,
	})
	if err != nil {
		return
	}

	ingestMetrics := input.NewIngestMetrics(daemon.cfg.Input.Type)
	daemon.input, err = input.New(daemon.cfg.Input, input.Pipeline{
		Decoder: dec,
		Encoder: enc,
		Queue:   daemon.queue,
		Metrics: ingestMetrics,
	})
	if err != nil {
		return
	}

	daemon.collectors = []metrics.Collector{daemon.queue, ingestMetrics, daemon.output.Metrics()}
	daemon.cfg.CheckMemoryBudget(ctx)
	return
}

// Runs the pipeline until the context is canceled or the input returns.
// Shutdown order matters: the input stops first, the queue drains, then the
// sink workers are stopped. In-flight batches are flushed best effort.
func (daemon *Daemon) Run(ctx context.Context) (err error) {
	if err = daemon.setup(ctx); err != nil {
		err = fmt.Errorf("failed to start the pipeline: %v", err)
		return
	}

	// sinks outlive the input so the queue can drain on shutdown
	outputCtx, stopOutput := context.WithCancel(logctx.WithLogger(context.Background(), logctx.GetLogger(ctx)))
	defer stopOutput()

	outputDone := make(chan struct{})
	go func() {
		defer close(outputDone)
		runCtx := logctx.AppendCtxTag(outputCtx, global.NSOutput)
		daemon.output.Run(runCtx)
	}()

	if daemon.cfg.Metrics.Enabled {
		go func() {
			reportCtx := logctx.AppendCtxTag(outputCtx, global.NSMetric)
			metrics.Report(reportCtx, daemon.cfg.Metrics.Interval, daemon.collectors)
		}()
	}

	inputCtx, stopInput := context.WithCancel(logctx.AppendCtxTag(ctx, global.NSInput))
	defer stopInput()
	inputDone := make(chan error, 1)
	go func() {
		inputDone <- daemon.input.Run(inputCtx)
	}()

	select {
	case err = <-inputDone:
		daemon.drain(ctx)
	case <-outputDone:
		// a sink that stops while the input is live takes the pipeline down,
		// a wedged queue would otherwise stall every connection silently
		err = fmt.Errorf("the output terminated unexpectedly")
		stopInput()
		<-inputDone
	}
	stopOutput()
	<-outputDone
	return
}

// Waits for queued payloads to reach the sink, bounded by the shutdown timeout
func (daemon *Daemon) drain(ctx context.Context) {
	deadline := time.Now().Add(global.ShutdownTimeout)
	for daemon.queue.Depth() > 0 {
		if time.Now().After(deadline) {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"shutdown timeout with %d payloads still queued\n", daemon.queue.Depth())
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
