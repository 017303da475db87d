// Parses wire payloads into the uniform record model
package decoder

import (
	"flowgger/internal/config"
	"flowgger/internal/record"
	"fmt"
)

// Decoder turns one wire payload into a Record.
// Implementations validate every record invariant before returning it.
type Decoder interface {
	Decode(payload []byte) (record.Record, error)
}

// Creates the decoder for a configured input format.
// The capnp format carries its own binary framing, so any text framing
// combined with it gets a decoder that rejects everything.
func New(cfg config.InputConfig) (new Decoder, err error) {
	switch cfg.Format {
	case "rfc5424":
		new = RFC5424Decoder{}
	case "rfc3164":
		new = RFC3164Decoder{}
	case "gelf":
		new = GELFDecoder{}
	case "ltsv":
		new, err = NewLTSVDecoder(cfg)
	case "capnp":
		if cfg.Framing == "capnp" {
			new = CapnpDecoder{}
		} else {
			new = InvalidDecoder{}
		}
	default:
		err = fmt.Errorf("unknown input format: %s", cfg.Format)
	}
	return
}
