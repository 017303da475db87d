package encoder

import (
	"flowgger/internal/record"
	"strconv"
	"strings"
	"time"
)

// Legacy BSD syslog lines
type RFC3164Encoder struct{}

func (RFC3164Encoder) Encode(rec record.Record) (payload []byte, err error) {
	var b strings.Builder

	if rec.Facility != record.FacilityMissing && rec.Severity != record.SeverityMissing {
		pri := ((rec.Facility << 3) & 0xf8) | (rec.Severity & 0x07)
		b.WriteByte('<')
		b.WriteString(strconv.Itoa(int(pri)))
		b.WriteByte('>')
	} else {
		b.WriteString(defaultPriority)
	}

	secs := int64(rec.Ts)
	b.WriteString(time.Unix(secs, 0).Format("Jan _2 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(rec.Hostname)

	if rec.Appname != "" {
		b.WriteByte(' ')
		b.WriteString(rec.Appname)
		if rec.ProcID != "" {
			b.WriteByte('[')
			b.WriteString(rec.ProcID)
			b.WriteByte(']')
		}
		b.WriteByte(':')
	}

	if rec.Msg != "" {
		b.WriteByte(' ')
		b.WriteString(rec.Msg)
	}

	payload = []byte(b.String())
	return
}
