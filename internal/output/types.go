// Sink adapters: consume encoded payloads from the broker and ship them out
package output

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/metrics"
	"fmt"
	"sync/atomic"
	"time"
)

// Output consumes the broker until the context is canceled. Run blocks.
// Workers are stateless, fairness comes from the shared blocking queue.
type Output interface {
	Run(ctx context.Context)
	Metrics() metrics.Collector
}

// Creates the sink for a configured output type.
// Sinks that hold a connection dial lazily inside Run so a slow or down
// peer delays shipping, not startup.
func New(cfg config.OutputConfig, deps Deps) (new Output, err error) {
	switch cfg.Type {
	case "debug":
		new = NewDebugOutput(cfg, deps)
	case "file":
		new, err = NewFileOutput(cfg, deps)
	case "kafka":
		new = NewKafkaOutput(cfg, deps)
	case "nats":
		new = NewNATSOutput(cfg, deps)
	case "tls":
		new, err = NewTLSOutput(cfg, deps)
	case "beats":
		new = NewBeatsOutput(cfg, deps)
	default:
		err = fmt.Errorf("invalid output type: %s", cfg.Type)
	}
	return
}

// Deps carries what every sink needs from the daemon
type Deps struct {
	Queue  Queue
	Framer Framer
}

// Queue is the consuming side of the broker
type Queue interface {
	Get(ctx context.Context) (payload []byte, ok bool)
}

// Framer decorates payloads with the output framing
type Framer interface {
	Frame(payload []byte) []byte
}

// Counters shared by all sink kinds
type sinkMetrics struct {
	Namespace []string

	Writes  atomic.Uint64 // payloads shipped
	Batches atomic.Uint64 // flushes performed
	Retries atomic.Uint64 // failed attempts that were retried
	Drops   atomic.Uint64 // payloads abandoned after a failed send or retry exhaustion
}

func newSinkMetrics(kind string) (new *sinkMetrics) {
	new = &sinkMetrics{
		Namespace: []string{global.NSOutput, kind},
	}
	return
}

func (m *sinkMetrics) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw uint64, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   m.Namespace,
			Type:        metrics.Counter,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     "count",
				Interval: interval,
			},
		})
	}

	add("writes", m.Writes.Swap(0), "Payloads shipped in the interval")
	add("batches", m.Batches.Swap(0), "Sink flushes in the interval")
	add("retries", m.Retries.Swap(0), "Send attempts retried in the interval")
	add("drops", m.Drops.Swap(0), "Payloads dropped after a failed send or retry exhaustion in the interval")
	return
}
