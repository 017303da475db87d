package input

import (
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/queue/broker"
	"flowgger/internal/record"
	"fmt"
	"net"
	"testing"
	"time"
)

// stub decoder: any payload becomes a minimal record carrying the payload as message
type stubDecoder struct{}

func (stubDecoder) Decode(payload []byte) (rec record.Record, err error) {
	if string(payload) == "poison" {
		err = fmt.Errorf("refusing the poison payload")
		return
	}
	rec = record.Record{
		Ts:       1,
		Hostname: "stub",
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
		Msg:      string(payload),
	}
	return
}

// stub encoder: the record message, verbatim
type stubEncoder struct{}

func (stubEncoder) Encode(rec record.Record) (payload []byte, err error) {
	payload = []byte(rec.Msg)
	return
}

func newTestPipeline(t *testing.T) (pipe Pipeline, queue *broker.Broker) {
	t.Helper()
	queue, err := broker.New([]string{global.NSTest}, 64)
	if err != nil {
		t.Fatalf("expected no error in creating queue, but got '%v'", err)
	}
	pipe = Pipeline{
		Decoder: stubDecoder{},
		Encoder: stubEncoder{},
		Queue:   queue,
		Metrics: NewIngestMetrics(global.NSTest),
	}
	return
}

func collect(t *testing.T, queue *broker.Broker, n int) (payloads []string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := 0; i < n; i++ {
		payload, ok := queue.Get(ctx)
		if !ok {
			t.Fatalf("expected %d payloads, got %d", n, i)
		}
		payloads = append(payloads, string(payload))
	}
	return
}

func TestSessionLineFraming(t *testing.T) {
	pipe, queue := newTestPipeline(t)
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		runSession(context.Background(), config.InputConfig{
			Framing:   "line",
			SyslenMax: 65536,
		}, pipe, server)
		close(done)
	}()

	if _, err := client.Write([]byte("first\nsecond\nthird")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	client.Close()
	<-done

	payloads := collect(t, queue, 3)
	for i, want := range []string{"first", "second", "third"} {
		if payloads[i] != want {
			t.Fatalf("payload %d: expected %q, got %q", i, want, payloads[i])
		}
	}
	if got := pipe.Metrics.Records.Load(); got != 3 {
		t.Fatalf("expected 3 records counted, got %d", got)
	}
}

func TestSessionDecodeErrorKeepsConnection(t *testing.T) {
	pipe, queue := newTestPipeline(t)
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		runSession(context.Background(), config.InputConfig{
			Framing:   "line",
			SyslenMax: 65536,
		}, pipe, server)
		close(done)
	}()

	if _, err := client.Write([]byte("good\npoison\nstill good\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	client.Close()
	<-done

	payloads := collect(t, queue, 2)
	if payloads[0] != "good" || payloads[1] != "still good" {
		t.Fatalf("unexpected payloads: %v", payloads)
	}
	if got := pipe.Metrics.DecodeFailures.Load(); got != 1 {
		t.Fatalf("expected 1 decode failure counted, got %d", got)
	}
}

func TestSessionTwoFramingErrorsClose(t *testing.T) {
	pipe, _ := newTestPipeline(t)
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		runSession(context.Background(), config.InputConfig{
			Framing:   "syslen",
			SyslenMax: 65536,
		}, pipe, server)
		close(done)
	}()

	// two malformed length prefixes in a row, connection must drop without EOF
	go func() {
		client.Write([]byte("x garbage\ny garbage\n"))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("the session should close after two framing errors")
	}
	if got := pipe.Metrics.FramingErrors.Load(); got != 2 {
		t.Fatalf("expected 2 framing errors counted, got %d", got)
	}
}

func TestSessionIdleTimeout(t *testing.T) {
	pipe, _ := newTestPipeline(t)
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		runSession(context.Background(), config.InputConfig{
			Framing:   "line",
			SyslenMax: 65536,
			Timeout:   50 * time.Millisecond,
		}, pipe, server)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("the session should close after the inactivity timeout")
	}
}
