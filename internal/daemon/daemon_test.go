package daemon

import (
	"context"
	"flowgger/internal/config"
	"testing"
)

func daemonConf(t *testing.T, toml string) (cfg config.Config) {
	t.Helper()
	raw, err := config.LoadString(toml)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	cfg, err = raw.NewDaemonConf()
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	return
}

func TestSetupBuildsPipeline(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"TCPToDebug", "[input]\ntype=\"tcp\"\nformat=\"rfc5424\"\n[output]\ntype=\"debug\"\nformat=\"gelf\"\n"},
		{"StdinLTSV", "[input]\ntype=\"stdin\"\nformat=\"ltsv\"\n[output]\ntype=\"debug\"\nformat=\"ltsv\"\n"},
		{"CapnpRelay", "[input]\ntype=\"tcp\"\nformat=\"capnp\"\nframing=\"capnp\"\n[output]\ntype=\"debug\"\nformat=\"capnp\"\n"},
		{"RFC3164Passthrough", "[input]\ntype=\"stdin\"\nformat=\"rfc3164\"\n[output]\ntype=\"debug\"\nformat=\"passthrough\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daemon := NewDaemon(daemonConf(t, tt.toml))
			if err := daemon.setup(context.Background()); err != nil {
				t.Fatalf("expected no error, got '%v'", err)
			}
			if daemon.queue == nil || daemon.input == nil || daemon.output == nil {
				t.Fatalf("the pipeline was not fully built")
			}
			if len(daemon.collectors) != 3 {
				t.Fatalf("expected 3 metric collectors, got %d", len(daemon.collectors))
			}
		})
	}
}

func TestSetupRejectsBadQueue(t *testing.T) {
	cfg := daemonConf(t, "[input]\ntype=\"tcp\"\n[output]\ntype=\"debug\"\n")
	cfg.Input.QueueSize = 0
	if err := NewDaemon(cfg).setup(context.Background()); err == nil {
		t.Fatalf("expected an error for a zero queue size")
	}
}
