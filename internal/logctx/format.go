package logctx

import (
	"fmt"
	"strings"
	"time"
)

// Renders an event as a single output line. Only parts that are present are printed.
func (event Event) Format() (line string) {
	var parts []string

	if !event.Timestamp.IsZero() {
		parts = append(parts, fmt.Sprintf("[%s]", padTimestamp(event.Timestamp)))
	}

	if len(event.Tags) > 0 {
		parts = append(parts, "["+strings.Join(event.Tags, "/")+"]")
	}

	if event.Severity != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Severity))
	}

	if event.Message != "" {
		msg := event.Message
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		parts = append(parts, msg)
	}

	line = strings.Join(parts, " ")
	return
}

// Fixed width timestamp keeps columns aligned in the output
func padTimestamp(ts time.Time) (padded string) {
	padded = ts.Format("2006-01-02 15:04:05.000")
	return
}
