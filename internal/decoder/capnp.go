package decoder

import (
	"flowgger/internal/record"
	"flowgger/internal/wire/logcap"
	"fmt"

	capnp "capnproto.org/go/capnp/v3"
)

// Binary records framed and serialized by the Cap'n Proto wire format
type CapnpDecoder struct{}

func (CapnpDecoder) Decode(payload []byte) (rec record.Record, err error) {
	msg, err := capnp.Unmarshal(payload)
	if err != nil {
		err = fmt.Errorf("invalid Cap'n Proto message: %v", err)
		return
	}
	root, err := logcap.ReadRootRecord(msg)
	if err != nil {
		err = fmt.Errorf("invalid Cap'n Proto record: %v", err)
		return
	}

	rec.Ts = root.Ts()
	rec.Facility = root.Facility()
	rec.Severity = root.Severity()
	if rec.Hostname, err = root.Hostname(); err != nil {
		return
	}
	if rec.Appname, err = root.Appname(); err != nil {
		return
	}
	if rec.ProcID, err = root.Procid(); err != nil {
		return
	}
	if rec.MsgID, err = root.Msgid(); err != nil {
		return
	}
	if rec.Msg, err = root.Msg(); err != nil {
		return
	}
	if rec.FullMsg, err = root.FullMsg(); err != nil {
		return
	}
	if rec.SDID, err = root.SdId(); err != nil {
		return
	}

	for _, list := range []func() (logcap.Pair_List, error){root.Pairs, root.Extra} {
		var pairs logcap.Pair_List
		if pairs, err = list(); err != nil {
			return
		}
		for i := 0; i < pairs.Len(); i++ {
			wirePair := pairs.At(i)
			var pair record.Pair
			if pair, err = decodePair(wirePair); err != nil {
				return
			}
			rec.Pairs = append(rec.Pairs, pair)
		}
	}
	err = rec.Validate()
	return
}

func decodePair(wirePair logcap.Pair) (pair record.Pair, err error) {
	if pair.Key, err = wirePair.Key(); err != nil {
		return
	}
	value := wirePair.Value()
	switch value.Which() {
	case logcap.Pair_value_Which_string:
		var str string
		if str, err = value.String(); err != nil {
			return
		}
		pair.Value = record.String(str)
	case logcap.Pair_value_Which_bool:
		pair.Value = record.Bool(value.Bool())
	case logcap.Pair_value_Which_f64:
		pair.Value = record.F64(value.F64())
	case logcap.Pair_value_Which_i64:
		pair.Value = record.I64(value.I64())
	case logcap.Pair_value_Which_u64:
		pair.Value = record.U64(value.U64())
	case logcap.Pair_value_Which_null:
		pair.Value = record.Null()
	default:
		err = fmt.Errorf("unknown value type in structured data")
	}
	return
}
