package encoder

import (
	"encoding/json"
	"flowgger/internal/record"
	"math"
	"testing"
)

func decodeJSON(t *testing.T, payload []byte) (obj map[string]any) {
	t.Helper()
	if err := json.Unmarshal(payload, &obj); err != nil {
		t.Fatalf("encoder produced invalid JSON: %v", err)
	}
	return
}

func TestGELFEncode(t *testing.T) {
	enc := &GELFEncoder{extra: map[string]string{"secret-token": "secret"}}
	rec := record.Record{
		Ts:       1385053862.3072,
		Hostname: "example.org",
		Facility: record.FacilityMissing,
		Severity: 1,
		Appname:  "appname",
		ProcID:   "44",
		Msg:      "A short message that helps you identify what is going on",
		FullMsg:  "Backtrace here\n\nmore stuff",
		SDID:     "someid",
		Pairs: []record.Pair{
			{Key: "some_info", Value: record.String("foo")},
			{Key: "user_id", Value: record.U64(9001)},
			{Key: "gone", Value: record.Null()},
		},
	}

	payload, err := enc.Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	obj := decodeJSON(t, payload)

	if obj["version"] != "1.1" || obj["host"] != "example.org" {
		t.Fatalf("unexpected header fields: %v", obj)
	}
	if math.Abs(obj["timestamp"].(float64)-1385053862.3072) > 1e-5 {
		t.Fatalf("unexpected timestamp: %v", obj["timestamp"])
	}
	if obj["level"].(float64) != 1 {
		t.Fatalf("unexpected level: %v", obj["level"])
	}
	if obj["full_message"] != "Backtrace here\n\nmore stuff" {
		t.Fatalf("unexpected full message: %v", obj["full_message"])
	}
	if obj["application_name"] != "appname" || obj["process_id"] != "44" {
		t.Fatalf("unexpected app fields: %v", obj)
	}
	if obj["sd_id"] != "someid" {
		t.Fatalf("unexpected sd id: %v", obj["sd_id"])
	}
	if obj["_some_info"] != "foo" {
		t.Fatalf("pairs should be prefixed with an underscore: %v", obj)
	}
	if obj["_user_id"].(float64) != 9001 {
		t.Fatalf("unexpected user id: %v", obj["_user_id"])
	}
	if value, present := obj["_gone"]; !present || value != nil {
		t.Fatalf("null values should be preserved: %v", obj)
	}
	if obj["secret-token"] != "secret" {
		t.Fatalf("extras should be merged in: %v", obj)
	}
}

func TestGELFEncodeDefaults(t *testing.T) {
	enc := &GELFEncoder{}
	rec := record.Record{
		Ts:       1385053862.3072,
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
	}
	// an empty hostname and message still produce a valid GELF document
	payload, err := enc.Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	obj := decodeJSON(t, payload)
	if obj["host"] != "unknown" || obj["short_message"] != "-" {
		t.Fatalf("unexpected defaults: %v", obj)
	}
	if _, present := obj["level"]; present {
		t.Fatalf("a missing severity should not encode a level")
	}
}

func TestGELFEncodeExtraOverridesPair(t *testing.T) {
	enc := &GELFEncoder{extra: map[string]string{"_a_key": "bar"}}
	rec := record.Record{
		Ts:       1,
		Hostname: "h",
		Facility: record.FacilityMissing,
		Severity: record.SeverityMissing,
		Pairs:    []record.Pair{{Key: "a_key", Value: record.String("foo")}},
	}
	payload, err := enc.Encode(rec)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	obj := decodeJSON(t, payload)
	if obj["_a_key"] != "bar" {
		t.Fatalf("extras should override event pairs: %v", obj)
	}
}
