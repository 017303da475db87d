package record

import "strconv"

// Constructors keep decoder call sites short

func String(v string) SDValue { return SDValue{Kind: KindString, Str: v} }
func Bool(v bool) SDValue     { return SDValue{Kind: KindBool, Bool: v} }
func F64(v float64) SDValue   { return SDValue{Kind: KindF64, F64: v} }
func I64(v int64) SDValue     { return SDValue{Kind: KindI64, I64: v} }
func U64(v uint64) SDValue    { return SDValue{Kind: KindU64, U64: v} }
func Null() SDValue           { return SDValue{Kind: KindNull} }

// Renders the value as text, the way string-only formats carry typed values
func (v SDValue) Text() (text string) {
	switch v.Kind {
	case KindString:
		text = v.Str
	case KindBool:
		text = strconv.FormatBool(v.Bool)
	case KindF64:
		text = strconv.FormatFloat(v.F64, 'f', -1, 64)
	case KindI64:
		text = strconv.FormatInt(v.I64, 10)
	case KindU64:
		text = strconv.FormatUint(v.U64, 10)
	case KindNull:
		text = ""
	}
	return
}

// Native returns the value as the nearest Go type, for JSON-shaped sinks
func (v SDValue) Native() (native any) {
	switch v.Kind {
	case KindString:
		native = v.Str
	case KindBool:
		native = v.Bool
	case KindF64:
		native = v.F64
	case KindI64:
		native = v.I64
	case KindU64:
		native = v.U64
	case KindNull:
		native = nil
	}
	return
}
