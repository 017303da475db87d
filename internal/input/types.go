// Input drivers: own the listening resource and the per-connection lifecycle
package input

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/decoder"
	"flowgger/internal/encoder"
	"flowgger/internal/global"
	"flowgger/internal/metrics"
	"flowgger/internal/queue/broker"
	"fmt"
	"sync/atomic"
	"time"
)

// Input accepts connections or polls its source until the context is
// canceled. Run blocks and returns on a startup failure, on shutdown, or when
// the source ends or fails (stdin returns at EOF and on read or repeated
// framing errors).
type Input interface {
	Run(ctx context.Context) error
}

// Pipeline is everything a connection session needs to move payloads from
// the wire into the broker
type Pipeline struct {
	Decoder decoder.Decoder
	Encoder encoder.Encoder
	Queue   *broker.Broker
	Metrics *IngestMetrics
}

// Creates the driver for a configured input type
func New(cfg config.InputConfig, pipe Pipeline) (new Input, err error) {
	switch cfg.Type {
	case "tcp":
		new = &TCPInput{cfg: cfg, pipe: pipe}
	case "tcp_co":
		new = &TCPInput{cfg: cfg, pipe: pipe, cooperative: true}
	case "tls":
		new, err = NewTLSInput(cfg, pipe, false)
	case "tls_co":
		new, err = NewTLSInput(cfg, pipe, true)
	case "udp":
		new = &UDPInput{cfg: cfg, pipe: pipe}
	case "redis":
		new = &RedisInput{cfg: cfg, pipe: pipe}
	case "stdin":
		new = &StdinInput{cfg: cfg, pipe: pipe}
	default:
		err = fmt.Errorf("invalid input type: %s", cfg.Type)
	}
	return
}

// Counters shared by all input kinds
type IngestMetrics struct {
	Namespace []string

	Records        atomic.Uint64 // payloads decoded, encoded and queued
	DecodeFailures atomic.Uint64 // payloads rejected by inflating, decoding or encoding
	FramingErrors  atomic.Uint64 // malformed frames
	Sessions       atomic.Uint64 // connections accepted
}

func NewIngestMetrics(kind string) (new *IngestMetrics) {
	new = &IngestMetrics{
		Namespace: []string{global.NSInput, kind},
	}
	return
}

func (m *IngestMetrics) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
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

	add("records", m.Records.Swap(0), "Records queued in the interval")
	add("decode_failures", m.DecodeFailures.Swap(0), "Payloads rejected by inflating, decoding or encoding in the interval")
	add("framing_errors", m.FramingErrors.Swap(0), "Malformed frames in the interval")
	add("sessions", m.Sessions.Swap(0), "Connections accepted in the interval")
	return
}
