package encoder

import (
	"encoding/json"
	"flowgger/internal/record"
	"fmt"
)

// GELF 1.1 JSON objects. Structured pairs become underscore prefixed fields.
// Static extras from the configuration override same named event pairs.
//
// GELF has no concept of duplicate keys, so when ordered pairs collide the
// last occurrence wins inside the object.
type GELFEncoder struct {
	extra map[string]string
}

func (e *GELFEncoder) Encode(rec record.Record) (payload []byte, err error) {
	hostname := rec.Hostname
	if hostname == "" {
		hostname = "unknown"
	}
	msg := rec.Msg
	if msg == "" {
		msg = "-"
	}

	obj := map[string]any{
		"version":       "1.1",
		"host":          hostname,
		"short_message": msg,
		"timestamp":     rec.Ts,
	}
	if rec.Severity != record.SeverityMissing {
		obj["level"] = rec.Severity
	}
	if rec.FullMsg != "" {
		obj["full_message"] = rec.FullMsg
	}
	if rec.Appname != "" {
		obj["application_name"] = rec.Appname
	}
	if rec.ProcID != "" {
		obj["process_id"] = rec.ProcID
	}
	if rec.SDID != "" {
		obj["sd_id"] = rec.SDID
	}
	for _, pair := range rec.Pairs {
		obj["_"+pair.Key] = pair.Value.Native()
	}
	for name, value := range e.extra {
		obj[name] = value
	}

	payload, err = json.Marshal(obj)
	if err != nil {
		err = fmt.Errorf("unable to serialize to JSON: %v", err)
	}
	return
}
