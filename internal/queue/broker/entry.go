// Bounded multi-producer multi-consumer payload queue
package broker

import (
	"context"
	"flowgger/internal/global"
	"fmt"
)

// Creates a new broker with a fixed capacity
func New(namespace []string, capacity int) (new *Broker, err error) {
	if capacity <= 0 {
		err = fmt.Errorf("queue capacity must be a positive integer")
		return
	}
	new = &Broker{
		Namespace: append(namespace, global.NSQueue),
		Size:      capacity,
		ch:        make(chan []byte, capacity),
	}
	return
}

// Blocks until the payload is queued or the context is canceled.
// No payload is ever dropped: a full queue stalls the caller, which stops
// reading its connection, which closes the TCP window toward the source.
func (b *Broker) Put(ctx context.Context, payload []byte) (ok bool) {
	select {
	case b.ch <- payload:
	default:
		// queue full, record the stall then block for real
		b.Metrics.Blocked.Add(1)
		select {
		case b.ch <- payload:
		case <-ctx.Done():
			return
		}
	}
	b.Metrics.Puts.Add(1)
	b.Metrics.Bytes.Add(uint64(len(payload)))
	ok = true
	return
}

// Blocks until a payload is available or the context is canceled
func (b *Broker) Get(ctx context.Context) (payload []byte, ok bool) {
	select {
	case payload = <-b.ch:
		b.Metrics.Gets.Add(1)
		ok = true
	case <-ctx.Done():
		// drain what is left before reporting shutdown
		select {
		case payload = <-b.ch:
			b.Metrics.Gets.Add(1)
			ok = true
		default:
		}
	}
	return
}

// Current number of queued payloads
func (b *Broker) Depth() (depth int) {
	depth = len(b.ch)
	return
}
