package broker

import (
	"flowgger/internal/metrics"
	"time"
)

func (b *Broker) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	recordTime := time.Now()

	add := func(name string, raw uint64, unit string, t metrics.MetricType, description string) {
		collection = append(collection, metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   b.Namespace,
			Type:        t,
			Timestamp:   recordTime,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
		})
	}

	add("depth", uint64(b.Depth()), "count", metrics.Gauge, "Current number of payloads in the queue")
	add("puts", b.Metrics.Puts.Swap(0), "count", metrics.Counter, "Payloads accepted in the interval")
	add("gets", b.Metrics.Gets.Swap(0), "count", metrics.Counter, "Payloads consumed in the interval")
	add("bytes", b.Metrics.Bytes.Swap(0), "bytes", metrics.Counter, "Byte sum of accepted payloads in the interval")
	add("blocked_puts", b.Metrics.Blocked.Swap(0), "count", metrics.Counter, "Puts that found the queue full in the interval")

	return
}
