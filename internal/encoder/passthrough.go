package encoder

import (
	"flowgger/internal/record"
	"fmt"
)

// Re-emits the raw input line untouched. Only formats that preserve the raw
// line in the full message can be relayed this way.
type PassthroughEncoder struct{}

func (PassthroughEncoder) Encode(rec record.Record) (payload []byte, err error) {
	if rec.FullMsg == "" {
		err = fmt.Errorf("cannot output an empty raw message")
		return
	}
	payload = []byte(rec.FullMsg)
	return
}
