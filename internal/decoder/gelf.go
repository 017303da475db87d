package decoder

import (
	"bytes"
	"flowgger/internal/record"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

// GELF 1.1 JSON objects, https://docs.graylog.org/docs/gelf
type GELFDecoder struct{}

func (GELFDecoder) Decode(payload []byte) (rec record.Record, err error) {
	var parser fastjson.Parser
	value, err := parser.ParseBytes(payload)
	if err != nil {
		// some emitters leave raw newlines inside string values, escape and retry
		patched := bytes.ReplaceAll(payload, []byte("\n"), []byte(`\n`))
		value, err = parser.ParseBytes(patched)
		if err != nil {
			err = fmt.Errorf("invalid GELF input, unable to parse as a JSON object")
			return
		}
	}
	obj, err := value.Object()
	if err != nil {
		err = fmt.Errorf("empty GELF input")
		return
	}

	rec.Facility = record.FacilityMissing
	rec.Severity = record.SeverityMissing
	var haveVersion, haveTs, haveMsg bool

	obj.Visit(func(key []byte, v *fastjson.Value) {
		if err != nil {
			return
		}
		switch string(key) {
		case "version":
			version, verr := v.StringBytes()
			if verr != nil {
				err = fmt.Errorf("GELF version must be a string")
				return
			}
			switch string(version) {
			case "1.0", "1.1":
				haveVersion = true
			default:
				err = fmt.Errorf("unsupported GELF version: %s", version)
			}
		case "timestamp":
			ts, verr := v.Float64()
			if verr != nil {
				err = fmt.Errorf("invalid GELF timestamp")
				return
			}
			rec.Ts = ts
			haveTs = true
		case "host":
			host, verr := v.StringBytes()
			if verr != nil {
				err = fmt.Errorf("GELF host name must be a string")
				return
			}
			rec.Hostname = string(host)
		case "short_message":
			msg, verr := v.StringBytes()
			if verr != nil {
				err = fmt.Errorf("GELF short message must be a string")
				return
			}
			rec.Msg = string(msg)
			haveMsg = true
		case "full_message":
			fullMsg, verr := v.StringBytes()
			if verr != nil {
				err = fmt.Errorf("GELF full message must be a string")
				return
			}
			rec.FullMsg = string(fullMsg)
		case "level":
			severity, verr := v.Uint64()
			if verr != nil {
				err = fmt.Errorf("invalid severity level")
				return
			}
			if severity > uint64(record.SeverityMax) {
				err = fmt.Errorf("invalid severity level (too high)")
				return
			}
			rec.Severity = uint8(severity)
		default:
			sdValue, verr := jsonToSDValue(v)
			if verr != nil {
				err = verr
				return
			}
			rec.Pairs = append(rec.Pairs, record.Pair{
				Key:   strings.TrimPrefix(string(key), "_"),
				Value: sdValue,
			})
		}
	})
	if err != nil {
		return
	}

	if !haveVersion {
		err = fmt.Errorf("missing GELF version")
		return
	}
	if !haveTs {
		err = fmt.Errorf("missing GELF timestamp")
		return
	}
	if rec.Hostname == "" {
		err = fmt.Errorf("missing hostname")
		return
	}
	if !haveMsg {
		err = fmt.Errorf("missing GELF short message")
		return
	}
	err = rec.Validate()
	return
}

// JSON scalars narrow into the typed value union. Numbers become i64 or u64
// when they carry no fractional part or exponent, f64 otherwise.
func jsonToSDValue(v *fastjson.Value) (sdValue record.SDValue, err error) {
	switch v.Type() {
	case fastjson.TypeString:
		str, _ := v.StringBytes()
		sdValue = record.String(string(str))
	case fastjson.TypeTrue:
		sdValue = record.Bool(true)
	case fastjson.TypeFalse:
		sdValue = record.Bool(false)
	case fastjson.TypeNull:
		sdValue = record.Null()
	case fastjson.TypeNumber:
		raw := v.String()
		if strings.ContainsAny(raw, ".eE") {
			f, _ := v.Float64()
			sdValue = record.F64(f)
		} else if strings.HasPrefix(raw, "-") {
			i, _ := v.Int64()
			sdValue = record.I64(i)
		} else {
			u, _ := v.Uint64()
			sdValue = record.U64(u)
		}
	default:
		err = fmt.Errorf("invalid value type in structured data")
	}
	return
}
