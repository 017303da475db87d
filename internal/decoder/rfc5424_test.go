package decoder

import (
	"flowgger/internal/record"
	"math"
	"testing"
)

func assertPair(t *testing.T, pairs []record.Pair, key string, want record.SDValue) {
	t.Helper()
	for _, pair := range pairs {
		if pair.Key != key {
			continue
		}
		if pair.Value.Kind != want.Kind {
			t.Fatalf("pair %q: expected kind %d, got %d", key, want.Kind, pair.Value.Kind)
		}
		switch want.Kind {
		case record.KindString:
			if pair.Value.Str != want.Str {
				t.Fatalf("pair %q: expected %q, got %q", key, want.Str, pair.Value.Str)
			}
		case record.KindBool:
			if pair.Value.Bool != want.Bool {
				t.Fatalf("pair %q: expected %v, got %v", key, want.Bool, pair.Value.Bool)
			}
		case record.KindF64:
			if math.Abs(pair.Value.F64-want.F64) > 1e-5 {
				t.Fatalf("pair %q: expected %v, got %v", key, want.F64, pair.Value.F64)
			}
		case record.KindI64:
			if pair.Value.I64 != want.I64 {
				t.Fatalf("pair %q: expected %d, got %d", key, want.I64, pair.Value.I64)
			}
		case record.KindU64:
			if pair.Value.U64 != want.U64 {
				t.Fatalf("pair %q: expected %d, got %d", key, want.U64, pair.Value.U64)
			}
		}
		return
	}
	t.Fatalf("pair %q not found", key)
}

func TestRFC5424Decode(t *testing.T) {
	msg := `<23>1 2015-08-05T15:53:45.637824Z testhostname appname 69 42 [origin@123 software="test script" swVersion="0.0.1"] test message`
	res, err := (RFC5424Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if math.Abs(res.Ts-1438790025.637824) > 1e-5 {
		t.Fatalf("unexpected timestamp: %f", res.Ts)
	}
	if res.Hostname != "testhostname" {
		t.Fatalf("unexpected hostname: %s", res.Hostname)
	}
	if res.Facility != 2 || res.Severity != 7 {
		t.Fatalf("unexpected priority: facility %d severity %d", res.Facility, res.Severity)
	}
	if res.Appname != "appname" || res.ProcID != "69" || res.MsgID != "42" {
		t.Fatalf("unexpected header fields: %q %q %q", res.Appname, res.ProcID, res.MsgID)
	}
	if res.Msg != "test message" {
		t.Fatalf("unexpected message: %q", res.Msg)
	}
	if res.SDID != "origin@123" {
		t.Fatalf("unexpected sd id: %q", res.SDID)
	}
	if len(res.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(res.Pairs))
	}
	assertPair(t, res.Pairs, "software", record.String("test script"))
	assertPair(t, res.Pairs, "swVersion", record.String("0.0.1"))
}

func TestRFC5424DecodeEscapes(t *testing.T) {
	msg := `<23>1 2015-08-05T15:53:45.637824Z testhostname appname 69 42 [origin@123 software="te\st sc\"ript" swVersion="0.0.1"] test message`
	res, err := (RFC5424Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	// unknown escapes keep their backslash, known ones are unescaped
	assertPair(t, res.Pairs, "software", record.String(`te\st sc"ript`))
}

func TestRFC5424DecodeMultipleGroups(t *testing.T) {
	msg := `<23>1 2015-08-05T15:53:45Z host app - - [first@1 a="1"][second@2 b="2"] tail`
	res, err := (RFC5424Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if res.SDID != "first@1" {
		t.Fatalf("expected the first group id, got %q", res.SDID)
	}
	if len(res.Pairs) != 2 {
		t.Fatalf("expected pairs from both groups, got %d", len(res.Pairs))
	}
	if res.Msg != "tail" {
		t.Fatalf("unexpected message: %q", res.Msg)
	}
}

func TestRFC5424DecodeNilValues(t *testing.T) {
	msg := `<23>1 2015-08-05T15:53:45Z host - - - - message`
	res, err := (RFC5424Decoder{}).Decode([]byte(msg))
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if res.Appname != "" || res.ProcID != "" || res.MsgID != "" || res.SDID != "" {
		t.Fatalf("NILVALUE fields should decode as absent")
	}
	if res.Msg != "message" {
		t.Fatalf("unexpected message: %q", res.Msg)
	}
}

func TestRFC5424DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"NoPriority", "1 2015-08-05T15:53:45Z host app - - - msg"},
		{"BadVersion", "<23>2 2015-08-05T15:53:45Z host app - - - msg"},
		{"PriorityTooLarge", "<200>1 2015-08-05T15:53:45Z host app - - - msg"},
		{"BadTimestamp", "<23>1 notadate host app - - - msg"},
		{"Truncated", "<23>1 2015-08-05T15:53:45Z host"},
		{"UnterminatedSD", `<23>1 2015-08-05T15:53:45Z host app - - [id a="1"`},
		{"GarbageSD", `<23>1 2015-08-05T15:53:45Z host app - - [id a=nope] msg`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (RFC5424Decoder{}).Decode([]byte(tt.in)); err == nil {
				t.Fatalf("expected a decode error")
			}
		})
	}
}
