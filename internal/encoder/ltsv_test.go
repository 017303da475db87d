package encoder

import (
	"flowgger/internal/config"
	"flowgger/internal/decoder"
	"flowgger/internal/record"
	"math"
	"strings"
	"testing"
)

func TestLTSVEncode(t *testing.T) {
	rec := record.Record{
		Ts:       1438790025.123,
		Hostname: "testhostname",
		Facility: record.FacilityMissing,
		Severity: 3,
		Msg:      "this is a test",
		Pairs: []record.Pair{
			{Key: "name1", Value: record.String("value1")},
			{Key: "counter", Value: record.U64(42)},
			{Key: "done", Value: record.Bool(true)},
		},
	}
	payload, err := (LTSVEncoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	line := string(payload)
	if strings.HasSuffix(line, "\t") {
		t.Fatalf("no trailing tab expected: %q", line)
	}
	fields := strings.Split(line, "\t")
	want := []string{
		"time:2015-08-05T15:53:45.123Z",
		"host:testhostname",
		"level:3",
		"message:this is a test",
		"name1:value1",
		"counter:42",
		"done:true",
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d: %q", len(want), len(fields), line)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("field %d: expected %q, got %q", i, want[i], fields[i])
		}
	}
}

func TestLTSVEncodeSanitizes(t *testing.T) {
	rec := record.Record{
		Ts:       1,
		Hostname: "h",
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
		Pairs:    []record.Pair{{Key: "k", Value: record.String("a\tb\nc")}},
	}
	payload, err := (LTSVEncoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if !strings.HasSuffix(string(payload), "k:a b c") {
		t.Fatalf("tabs and newlines should be replaced: %q", payload)
	}
}

func TestLTSVRoundTrip(t *testing.T) {
	d, err := decoder.NewLTSVDecoder(config.InputConfig{
		LTSVSchema: map[string]string{"counter": "u64"},
	})
	if err != nil {
		t.Fatalf("expected no error building the decoder, got '%v'", err)
	}

	in := "time:2015-08-05T15:53:45.123Z\thost:testhostname\tlevel:3\tmessage:hello\tcounter:42"
	rec, err := d.Decode([]byte(in))
	if err != nil {
		t.Fatalf("expected no decode error, got '%v'", err)
	}
	payload, err := (LTSVEncoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no encode error, got '%v'", err)
	}

	rec2, err := d.Decode(payload)
	if err != nil {
		t.Fatalf("expected no re-decode error, got '%v'", err)
	}
	if math.Abs(rec2.Ts-rec.Ts) > 1e-3 {
		t.Fatalf("timestamp drifted: %f != %f", rec2.Ts, rec.Ts)
	}
	if rec2.Hostname != rec.Hostname || rec2.Severity != rec.Severity || rec2.Msg != rec.Msg {
		t.Fatalf("fields drifted across the round trip")
	}
	if len(rec2.Pairs) != len(rec.Pairs) {
		t.Fatalf("pairs drifted across the round trip")
	}
}

func TestPassthroughEncode(t *testing.T) {
	raw := "<13>Aug  6 11:15:24 host appname: some test message"
	rec := record.Record{
		Ts:       1,
		Hostname: "host",
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
		FullMsg:  raw,
	}
	payload, err := (PassthroughEncoder{}).Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if string(payload) != raw {
		t.Fatalf("expected the raw message, got %q", payload)
	}

	rec.FullMsg = ""
	if _, err = (PassthroughEncoder{}).Encode(rec); err == nil {
		t.Fatalf("expected an error for an empty raw message")
	}
}
