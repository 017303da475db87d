package output

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"time"

	lumberjack "github.com/elastic/go-lumber/client/v2"
)

// Ships payloads to a beats (lumberjack v2) endpoint such as Logstash,
// sending a batch each time beats_coalesce payloads are buffered and the
// remainder at shutdown; there is no time-based flush
type BeatsOutput struct {
	cfg     config.OutputConfig
	deps    Deps
	metrics *sinkMetrics
}

func NewBeatsOutput(cfg config.OutputConfig, deps Deps) (new *BeatsOutput) {
	new = &BeatsOutput{
		cfg:     cfg,
		deps:    deps,
		metrics: newSinkMetrics("Beats"),
	}
	return
}

func (o *BeatsOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *BeatsOutput) Run(ctx context.Context) {
	client, err := lumberjack.SyncDial(o.cfg.BeatsConnect,
		lumberjack.CompressionLevel(0),
		lumberjack.Timeout(3*time.Second),
	)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed connection to beats server: %v\n", err)
		return
	}
	defer client.Close()

	batch := make([]interface{}, 0, o.cfg.BeatsCoalesce)
	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			o.flush(ctx, client, batch)
			return
		}
		batch = append(batch, map[string]interface{}{
			"@timestamp": time.Now().UTC(),
			"message":    string(o.deps.Framer.Frame(payload)),
			"agent": map[string]interface{}{
				"program": global.ProgBaseName,
				"version": global.ProgVersion,
			},
		})
		if len(batch) >= o.cfg.BeatsCoalesce {
			o.flush(ctx, client, batch)
			batch = batch[:0]
		}
	}
}

func (o *BeatsOutput) flush(ctx context.Context, client *lumberjack.SyncClient, batch []interface{}) {
	if len(batch) == 0 {
		return
	}
	sent, err := client.Send(batch)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed to ship %d payloads to beats server: %v\n", len(batch), err)
		o.metrics.Drops.Add(uint64(len(batch) - sent))
		return
	}
	o.metrics.Batches.Add(1)
	o.metrics.Writes.Add(uint64(sent))
}
