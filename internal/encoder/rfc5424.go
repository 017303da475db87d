package encoder

import (
	"flowgger/internal/record"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPriority = "<13>"
	syslogVersion   = "1"

	// SD-ID used when a record carries pairs but no identifier of its own
	defaultSDID = "flowgger@0"
)

type RFC5424Encoder struct{}

func (RFC5424Encoder) Encode(rec record.Record) (payload []byte, err error) {
	var b strings.Builder

	if rec.Facility != record.FacilityMissing && rec.Severity != record.SeverityMissing {
		pri := ((rec.Facility << 3) & 0xf8) | (rec.Severity & 0x07)
		b.WriteByte('<')
		b.WriteString(strconv.Itoa(int(pri)))
		b.WriteByte('>')
	} else {
		b.WriteString(defaultPriority)
	}
	b.WriteString(syslogVersion)
	b.WriteByte(' ')

	b.WriteString(formatTs(rec.Ts))
	b.WriteByte(' ')
	b.WriteString(rec.Hostname)
	b.WriteByte(' ')
	b.WriteString(orNil(rec.Appname))
	b.WriteByte(' ')
	b.WriteString(orNil(rec.ProcID))
	b.WriteByte(' ')
	b.WriteString(orNil(rec.MsgID))
	b.WriteByte(' ')

	if len(rec.Pairs) > 0 || rec.SDID != "" {
		sdID := rec.SDID
		if sdID == "" {
			sdID = defaultSDID
		}
		b.WriteByte('[')
		b.WriteString(sdID)
		for _, pair := range rec.Pairs {
			b.WriteByte(' ')
			b.WriteString(pair.Key)
			b.WriteString(`="`)
			b.WriteString(escapeSDValue(pair.Value.Text()))
			b.WriteByte('"')
		}
		b.WriteByte(']')
	} else {
		b.WriteByte('-')
	}

	if rec.Msg != "" {
		b.WriteByte(' ')
		b.WriteString(rec.Msg)
	}

	payload = []byte(b.String())
	return
}

// Millisecond precision RFC 3339, Z for UTC
func formatTs(ts float64) (formatted string) {
	millis := int64(math.Round(ts * 1000))
	formatted = time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return
}

func orNil(field string) (out string) {
	if field == "" {
		out = "-"
		return
	}
	out = field
	return
}

// Within an SD value, ], " and \ must be escaped
func escapeSDValue(value string) (escaped string) {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '"' || c == '\\' || c == ']' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	escaped = b.String()
	return
}
