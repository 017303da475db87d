// Serializes records into the configured output format
package encoder

import (
	"flowgger/internal/config"
	"flowgger/internal/record"
	"fmt"
)

// Encoder turns one Record into an opaque wire payload.
// Encoding happens on the producer side so sink workers stay pure I/O loops.
type Encoder interface {
	Encode(rec record.Record) ([]byte, error)
}

// Creates the encoder for a configured output format
func New(cfg config.OutputConfig) (new Encoder, err error) {
	switch cfg.Format {
	case "gelf", "json":
		new = &GELFEncoder{extra: cfg.GelfExtra}
	case "rfc5424":
		new = RFC5424Encoder{}
	case "rfc3164":
		new = RFC3164Encoder{}
	case "ltsv":
		new = LTSVEncoder{}
	case "capnp":
		new = &CapnpEncoder{extra: cfg.CapnpExtra}
	case "passthrough":
		new = PassthroughEncoder{}
	default:
		err = fmt.Errorf("unknown output format: %s", cfg.Format)
	}
	return
}
