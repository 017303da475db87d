package encoder

import (
	"flowgger/internal/decoder"
	"flowgger/internal/record"
	"testing"
)

func TestRFC5424Encode(t *testing.T) {
	rec := record.Record{
		Ts:       1438874124.637,
		Hostname: "testhostname",
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
		Msg:      "some test message",
	}
	payload, err := (RFC5424Encoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	expected := `<13>1 2015-08-06T15:15:24.637Z testhostname - - - - some test message`
	if string(payload) != expected {
		t.Fatalf("expected %q, got %q", expected, payload)
	}
}

func TestRFC5424EncodeFull(t *testing.T) {
	rec := record.Record{
		Ts:       1438790025.382,
		Hostname: "testhostname",
		Facility: 3,
		Severity: 1,
		Appname:  "appname",
		ProcID:   "69",
		MsgID:    "42",
		Msg:      "test message",
		SDID:     "origin@123",
		Pairs: []record.Pair{
			{Key: "software", Value: record.String(`test sc"ript`)},
			{Key: "swVersion", Value: record.String("0.0.1")},
		},
	}
	payload, err := (RFC5424Encoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	expected := `<25>1 2015-08-05T15:53:45.382Z testhostname appname 69 42 [origin@123 software="test sc\"ript" swVersion="0.0.1"] test message`
	if string(payload) != expected {
		t.Fatalf("expected %q, got %q", expected, payload)
	}
}

func TestRFC5424RoundTrip(t *testing.T) {
	in := `<23>1 2015-08-05T15:53:45.637Z testhostname appname 69 42 [origin@123 software="test script"] test message`
	rec, err := (decoder.RFC5424Decoder{}).Decode([]byte(in))
	if err != nil {
		t.Fatalf("expected no decode error, got '%v'", err)
	}
	payload, err := (RFC5424Encoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no encode error, got '%v'", err)
	}
	if string(payload) != in {
		t.Fatalf("round trip mismatch:\n in: %s\nout: %s", in, payload)
	}
}
