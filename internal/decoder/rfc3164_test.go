package decoder

import (
	"testing"
	"time"
)

func TestRFC3164Decode(t *testing.T) {
	msg := "<13>Aug  6 11:15:24 testhostname appname[69]: some test message"
	res, err := (RFC3164Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if res.Facility != 1 || res.Severity != 5 {
		t.Fatalf("unexpected priority: facility %d severity %d", res.Facility, res.Severity)
	}
	if res.Hostname != "testhostname" {
		t.Fatalf("unexpected hostname: %s", res.Hostname)
	}
	if res.Msg != "appname[69]: some test message" {
		t.Fatalf("unexpected message: %q", res.Msg)
	}
	if res.FullMsg != msg {
		t.Fatalf("the raw line should be preserved as the full message")
	}

	// the year-less date is completed with the current year
	decoded := time.Unix(int64(res.Ts), 0)
	if decoded.Year() != time.Now().Year() && decoded.Year() != time.Now().Year()-1 {
		t.Fatalf("unexpected year: %d", decoded.Year())
	}
}

func TestRFC3164DecodeNoPri(t *testing.T) {
	msg := "Aug  6 11:15:24 testhostname some test message"
	res, err := (RFC3164Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if res.Hostname != "testhostname" {
		t.Fatalf("unexpected hostname: %s", res.Hostname)
	}
	if res.Msg != "some test message" {
		t.Fatalf("unexpected message: %q", res.Msg)
	}
}

func TestRFC3164DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"BadPriority", "<abc>Aug  6 11:15:24 host msg"},
		{"TooShort", "Aug  6 11:15:24"},
		{"BadDate", "Foo 99 99:99:99 host msg text here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (RFC3164Decoder{}).Decode([]byte(tt.in)); err == nil {
				t.Fatalf("expected a decode error")
			}
		})
	}
}
