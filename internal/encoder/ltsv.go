package encoder

import (
	"flowgger/internal/record"
	"strconv"
	"strings"
)

// Tab separated key:value fields, one record per line
type LTSVEncoder struct{}

func (LTSVEncoder) Encode(rec record.Record) (payload []byte, err error) {
	var b strings.Builder

	b.WriteString("time:")
	b.WriteString(formatTs(rec.Ts))
	b.WriteString("\thost:")
	b.WriteString(rec.Hostname)

	if rec.Severity != record.SeverityMissing {
		b.WriteString("\tlevel:")
		b.WriteString(strconv.Itoa(int(rec.Severity)))
	}
	if rec.Msg != "" {
		b.WriteString("\tmessage:")
		b.WriteString(sanitizeLTSV(rec.Msg))
	}
	for _, pair := range rec.Pairs {
		b.WriteByte('\t')
		b.WriteString(sanitizeLTSV(pair.Key))
		b.WriteByte(':')
		b.WriteString(sanitizeLTSV(pair.Value.Text()))
	}

	payload = []byte(b.String())
	return
}

// Tabs and newlines are the only characters LTSV cannot carry
func sanitizeLTSV(field string) (sanitized string) {
	sanitized = strings.NewReplacer("\t", " ", "\n", " ").Replace(field)
	return
}
