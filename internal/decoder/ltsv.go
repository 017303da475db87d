package decoder

import (
	"flowgger/internal/config"
	"flowgger/internal/record"
	"fmt"
	"strconv"
	"strings"
)

// Tab separated key:value lines (http://ltsv.org). An optional schema coerces
// chosen keys to typed values, and an optional suffix table rewrites property
// names so typed sinks see a stable key to type relation.
type LTSVDecoder struct {
	schema   map[string]record.SDKind
	suffixes map[record.SDKind]string
}

func NewLTSVDecoder(cfg config.InputConfig) (new *LTSVDecoder, err error) {
	new = &LTSVDecoder{
		schema:   make(map[string]record.SDKind),
		suffixes: make(map[record.SDKind]string),
	}
	for name, sdtype := range cfg.LTSVSchema {
		kind, kerr := kindFromName(sdtype)
		if kerr != nil {
			err = fmt.Errorf("unsupported type in ltsv_schema for name [%s]: %s", name, sdtype)
			return
		}
		new.schema[name] = kind
	}
	for sdtype, suffix := range cfg.LTSVSuffixes {
		kind, kerr := kindFromName(sdtype)
		if kerr != nil || kind == record.KindString {
			err = fmt.Errorf("unsupported type in ltsv_suffixes: %s", sdtype)
			return
		}
		new.suffixes[kind] = suffix
	}
	return
}

func kindFromName(sdtype string) (kind record.SDKind, err error) {
	switch strings.ToLower(sdtype) {
	case "string":
		kind = record.KindString
	case "bool":
		kind = record.KindBool
	case "f64":
		kind = record.KindF64
	case "i64":
		kind = record.KindI64
	case "u64":
		kind = record.KindU64
	default:
		err = fmt.Errorf("unknown schema type: %s", sdtype)
	}
	return
}

func (d *LTSVDecoder) Decode(payload []byte) (rec record.Record, err error) {
	rec.Facility = record.FacilityMissing
	rec.Severity = record.SeverityMissing
	var haveTs bool

	for _, part := range strings.Split(string(payload), "\t") {
		name, value, found := strings.Cut(part, ":")
		if !found {
			err = fmt.Errorf("missing value for name '%s'", name)
			return
		}
		switch name {
		case "time":
			tsText := value
			if strings.HasPrefix(tsText, "[") && strings.HasSuffix(tsText, "]") {
				tsText = tsText[1 : len(tsText)-1]
			}
			rec.Ts, err = parseFlexibleTs(tsText)
			if err != nil {
				return
			}
			haveTs = true
		case "host":
			rec.Hostname = value
		case "message":
			rec.Msg = value
		case "level":
			severity, serr := strconv.ParseUint(value, 10, 8)
			if serr != nil || severity > uint64(record.SeverityMax) {
				err = fmt.Errorf("invalid severity level: %s", value)
				return
			}
			rec.Severity = uint8(severity)
		default:
			var pair record.Pair
			pair, err = d.typedPair(name, value)
			if err != nil {
				return
			}
			rec.Pairs = append(rec.Pairs, pair)
		}
	}

	if !haveTs {
		err = fmt.Errorf("missing time field")
		return
	}
	if rec.Hostname == "" {
		err = fmt.Errorf("missing host field")
		return
	}
	err = rec.Validate()
	return
}

// Coerces a field to its declared type and applies the suffix rewrite
func (d *LTSVDecoder) typedPair(name, value string) (pair record.Pair, err error) {
	kind, declared := d.schema[name]
	if !declared {
		kind = record.KindString
	}

	switch kind {
	case record.KindString:
		pair.Value = record.String(value)
	case record.KindBool:
		parsed, perr := strconv.ParseBool(value)
		if perr != nil {
			err = fmt.Errorf("type mismatch for [%s]: not a bool: %s", name, value)
			return
		}
		pair.Value = record.Bool(parsed)
	case record.KindF64:
		parsed, perr := strconv.ParseFloat(value, 64)
		if perr != nil {
			err = fmt.Errorf("type mismatch for [%s]: not an f64: %s", name, value)
			return
		}
		pair.Value = record.F64(parsed)
	case record.KindI64:
		parsed, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			err = fmt.Errorf("type mismatch for [%s]: not an i64: %s", name, value)
			return
		}
		pair.Value = record.I64(parsed)
	case record.KindU64:
		parsed, perr := strconv.ParseUint(value, 10, 64)
		if perr != nil {
			err = fmt.Errorf("type mismatch for [%s]: not a u64: %s", name, value)
			return
		}
		pair.Value = record.U64(parsed)
	}

	pair.Key = name
	if suffix, rewrite := d.suffixes[kind]; rewrite && !strings.HasSuffix(name, suffix) {
		pair.Key = name + suffix
	}
	return
}
