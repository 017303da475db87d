package decoder

import (
	"flowgger/internal/record"
	"fmt"
	"strconv"
	"strings"
)

// Legacy BSD syslog: optional <PRI>, a year-less timestamp, hostname, free text.
// The raw line is preserved as the full message so passthrough relays keep it intact.
type RFC3164Decoder struct{}

func (RFC3164Decoder) Decode(payload []byte) (rec record.Record, err error) {
	line := string(payload)
	facility, severity, msg, err := parseStripPri(line)
	if err != nil {
		return
	}

	// the event may have several consecutive spaces as separator
	tokens := strings.Fields(msg)
	if len(tokens) < 4 {
		err = fmt.Errorf("malformed rfc3164 event: invalid timestamp or hostname")
		return
	}

	// date is the first three space separated tokens
	ts, err := parseBSDTs(strings.Join(tokens[0:3], " "))
	if err != nil {
		return
	}

	rec = record.Record{
		Ts:       ts,
		Hostname: tokens[3],
		Facility: facility,
		Severity: severity,
		Msg:      strings.Join(tokens[4:], " "),
		FullMsg:  line,
	}
	err = rec.Validate()
	return
}

// The PRI part is optional in rfc3164
func parseStripPri(event string) (facility, severity uint8, msg string, err error) {
	facility = record.FacilityMissing
	severity = record.SeverityMissing
	msg = event
	if !strings.HasPrefix(event, "<") {
		return
	}

	inner, rest, found := strings.Cut(event[1:], ">")
	if !found {
		err = fmt.Errorf("malformed rfc3164 event: invalid priority")
		return
	}
	pri, perr := strconv.ParseUint(inner, 10, 8)
	if perr != nil || pri > 191 {
		err = fmt.Errorf("invalid priority: %s", inner)
		return
	}
	facility = uint8(pri >> 3)
	severity = uint8(pri & 7)
	msg = rest
	return
}
