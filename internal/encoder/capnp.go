package encoder

import (
	"flowgger/internal/record"
	"flowgger/internal/wire/logcap"
	"fmt"
	"sort"

	capnp "capnproto.org/go/capnp/v3"
)

// Cap'n Proto records. Static extras from the configuration travel in their
// own list so downstream relays can tell event data from annotations.
type CapnpEncoder struct {
	extra map[string]string
}

func (e *CapnpEncoder) Encode(rec record.Record) (payload []byte, err error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		err = fmt.Errorf("unable to allocate a Cap'n Proto message: %v", err)
		return
	}
	root, err := logcap.NewRootRecord(seg)
	if err != nil {
		err = fmt.Errorf("unable to allocate a Cap'n Proto record: %v", err)
		return
	}

	root.SetTs(rec.Ts)
	root.SetFacility(rec.Facility)
	root.SetSeverity(rec.Severity)
	if err = root.SetHostname(rec.Hostname); err != nil {
		return
	}
	if rec.Appname != "" {
		if err = root.SetAppname(rec.Appname); err != nil {
			return
		}
	}
	if rec.ProcID != "" {
		if err = root.SetProcid(rec.ProcID); err != nil {
			return
		}
	}
	if rec.MsgID != "" {
		if err = root.SetMsgid(rec.MsgID); err != nil {
			return
		}
	}
	if rec.Msg != "" {
		if err = root.SetMsg(rec.Msg); err != nil {
			return
		}
	}
	if rec.FullMsg != "" {
		if err = root.SetFullMsg(rec.FullMsg); err != nil {
			return
		}
	}
	if rec.SDID != "" {
		if err = root.SetSdId(rec.SDID); err != nil {
			return
		}
	}

	if len(rec.Pairs) > 0 {
		var pairs logcap.Pair_List
		if pairs, err = root.NewPairs(int32(len(rec.Pairs))); err != nil {
			return
		}
		for i, pair := range rec.Pairs {
			wirePair := pairs.At(i)
			if err = encodePair(wirePair, pair); err != nil {
				return
			}
		}
	}

	if len(e.extra) > 0 {
		var extras logcap.Pair_List
		if extras, err = root.NewExtra(int32(len(e.extra))); err != nil {
			return
		}
		names := make([]string, 0, len(e.extra))
		for name := range e.extra {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			wirePair := extras.At(i)
			if err = wirePair.SetKey(name); err != nil {
				return
			}
			if err = wirePair.Value().SetString(e.extra[name]); err != nil {
				return
			}
		}
	}

	payload, err = msg.Marshal()
	if err != nil {
		err = fmt.Errorf("unable to serialize to Cap'n Proto format: %v", err)
	}
	return
}

func encodePair(wirePair logcap.Pair, pair record.Pair) (err error) {
	if err = wirePair.SetKey(pair.Key); err != nil {
		return
	}
	value := wirePair.Value()
	switch pair.Value.Kind {
	case record.KindString:
		err = value.SetString(pair.Value.Str)
	case record.KindBool:
		value.SetBool(pair.Value.Bool)
	case record.KindF64:
		value.SetF64(pair.Value.F64)
	case record.KindI64:
		value.SetI64(pair.Value.I64)
	case record.KindU64:
		value.SetU64(pair.Value.U64)
	case record.KindNull:
		value.SetNull()
	}
	return
}
