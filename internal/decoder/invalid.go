package decoder

import (
	"flowgger/internal/record"
	"fmt"
)

// Selected when the configured format cannot be decoded from the configured
// framing, e.g. capnp records over a text framing. Fails every payload.
type InvalidDecoder struct{}

func (InvalidDecoder) Decode(payload []byte) (rec record.Record, err error) {
	err = fmt.Errorf("this input format cannot be decoded from the configured framing")
	return
}
