// Output framing: wraps encoded payloads for the downstream transport
package framer

import "fmt"

// Framer decorates one encoded payload with its on-wire delimiter
type Framer interface {
	Frame(payload []byte) []byte
}

// Creates the framer for a configured output framing policy
func New(framing string) (new Framer, err error) {
	switch framing {
	case "noop", "nop", "none":
		new = NoopFramer{}
	case "line":
		new = LineFramer{}
	case "nul":
		new = NulFramer{}
	case "syslen":
		new = SyslenFramer{}
	default:
		err = fmt.Errorf("invalid output framing type: %s", framing)
	}
	return
}
