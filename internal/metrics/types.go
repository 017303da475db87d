package metrics

import "time"

type MetricType string

const (
	Counter MetricType = "counter" // always increasing
	Gauge   MetricType = "gauge"   // can go up/down
)

// Container for a metric and associated data
type Metric struct {
	Name        string // e.g. queue_depth, decode_failures
	Description string
	Namespace   []string // e.g. "Input/Session/3"
	Value       MetricValue
	Type        MetricType
	Timestamp   time.Time // time when the metric was recorded
}

// Specific value of a metric
type MetricValue struct {
	Raw      uint64
	Unit     string        // e.g. "count", "bytes"
	Interval time.Duration // measurement window
}

// Collector is implemented by pipeline components that expose counters
type Collector interface {
	CollectMetrics(interval time.Duration) []Metric
}
