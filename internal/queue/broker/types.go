package broker

import "sync/atomic"

// Broker is the fixed capacity FIFO queue between per-connection producers
// and the pool of sink workers. It is the only shared mutable structure in
// the pipeline: producers block when it is full, which is how backpressure
// reaches the transport read loops.
type Broker struct {
	Namespace []string
	Size      int
	ch        chan []byte
	Metrics   MetricStorage
}

type MetricStorage struct {
	Puts    atomic.Uint64 // payloads accepted
	Gets    atomic.Uint64 // payloads handed to consumers
	Bytes   atomic.Uint64 // byte sum of accepted payloads
	Blocked atomic.Uint64 // puts that found the queue full
}
