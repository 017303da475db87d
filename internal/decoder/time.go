package decoder

import (
	"fmt"
	"strconv"
	"time"
)

// Common log file time layout, e.g. 10/Oct/2000:13:55:36.3 -0700
const clfTimeLayout = "02/Jan/2006:15:04:05.999999999 -0700"

// Legacy BSD syslog timestamp, no year
const bsdTimeLayout = "Jan _2 15:04:05"

// Converts a parsed time to epoch seconds without losing sub-second precision
func toUnixF(t time.Time) (ts float64) {
	ts = float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return
}

func parseRFC3339(value string) (ts float64, err error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		err = fmt.Errorf("unable to parse the date: %s", value)
		return
	}
	ts = toUnixF(t)
	return
}

// LTSV carries either an RFC 3339 date, a CLF date, or a raw epoch number
func parseFlexibleTs(value string) (ts float64, err error) {
	if t, terr := time.Parse(time.RFC3339Nano, value); terr == nil {
		ts = toUnixF(t)
		return
	}
	if t, terr := time.Parse(clfTimeLayout, value); terr == nil {
		ts = toUnixF(t)
		return
	}
	if epoch, terr := strconv.ParseFloat(value, 64); terr == nil {
		ts = epoch
		return
	}
	err = fmt.Errorf("unable to parse the date: %s", value)
	return
}

// Completes a year-less BSD timestamp with the current year
func parseBSDTs(value string) (ts float64, err error) {
	t, err := time.Parse(bsdTimeLayout, value)
	if err != nil {
		err = fmt.Errorf("unable to parse the date: %s", value)
		return
	}
	now := time.Now()
	t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
	// A December event read in January belongs to the previous year
	if t.After(now.AddDate(0, 0, 7)) {
		t = t.AddDate(-1, 0, 0)
	}
	ts = toUnixF(t)
	return
}
