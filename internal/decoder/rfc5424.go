package decoder

import (
	"flowgger/internal/record"
	"fmt"
	"strconv"
	"strings"
)

// RFC 5424 syslog:
// PRI VERSION SP TIMESTAMP SP HOSTNAME SP APPNAME SP PROCID SP MSGID SP [SD|-] [SP MSG]
type RFC5424Decoder struct{}

func (RFC5424Decoder) Decode(payload []byte) (rec record.Record, err error) {
	line := strings.TrimPrefix(string(payload), "\ufeff")
	if !strings.HasPrefix(line, "<") {
		err = fmt.Errorf("the priority should be inside angle brackets")
		return
	}

	parts := strings.SplitN(line, " ", 7)
	if len(parts) < 7 {
		err = fmt.Errorf("truncated rfc5424 header")
		return
	}

	facility, severity, err := parsePriVersion(parts[0])
	if err != nil {
		return
	}
	ts, err := parseRFC3339(parts[1])
	if err != nil {
		return
	}

	sdID, pairs, msg, err := parseStructuredData(parts[6])
	if err != nil {
		return
	}

	rec = record.Record{
		Ts:       ts,
		Hostname: parts[2],
		Facility: facility,
		Severity: severity,
		Appname:  nilValue(parts[3]),
		ProcID:   nilValue(parts[4]),
		MsgID:    nilValue(parts[5]),
		Msg:      msg,
		SDID:     sdID,
		Pairs:    pairs,
	}
	err = rec.Validate()
	return
}

// NILVALUE maps to an absent field
func nilValue(field string) (value string) {
	if field != "-" {
		value = field
	}
	return
}

// PRI is facility*8+severity in angle brackets, immediately followed by the version
func parsePriVersion(field string) (facility, severity uint8, err error) {
	inner, version, found := strings.Cut(field[1:], ">")
	if !found {
		err = fmt.Errorf("missing version after the priority")
		return
	}
	pri, err := strconv.ParseUint(inner, 10, 8)
	if err != nil || pri > 191 {
		err = fmt.Errorf("invalid priority: %s", inner)
		return
	}
	if version != "1" {
		err = fmt.Errorf("unsupported syslog version: %s", version)
		return
	}
	facility = uint8(pri >> 3)
	severity = uint8(pri & 7)
	return
}

// Parses the STRUCTURED-DATA element, possibly several bracketed groups,
// then whatever remains is the free form message
func parseStructuredData(data string) (sdID string, pairs []record.Pair, msg string, err error) {
	if data == "" {
		err = fmt.Errorf("short message")
		return
	}
	if data[0] == '-' {
		msg = cleanMsg(data[1:])
		return
	}
	if data[0] != '[' {
		err = fmt.Errorf("short message")
		return
	}

	rest := data
	for strings.HasPrefix(rest, "[") {
		var groupID string
		var groupPairs []record.Pair
		groupID, groupPairs, rest, err = parseSDGroup(rest[1:])
		if err != nil {
			return
		}
		// the first SD-ID names the whole record
		if sdID == "" {
			sdID = groupID
		}
		pairs = append(pairs, groupPairs...)
	}
	msg = cleanMsg(rest)
	return
}

// Parses one group starting right after its opening bracket.
// Returns the remaining input after the closing bracket.
func parseSDGroup(group string) (sdID string, pairs []record.Pair, rest string, err error) {
	idEnd := strings.IndexAny(group, " ]")
	if idEnd <= 0 {
		err = fmt.Errorf("missing structured data id")
		return
	}
	sdID = group[:idEnd]
	if group[idEnd] == ']' {
		rest = group[idEnd+1:]
		return
	}

	body := group[idEnd+1:]
	var (
		inName, inValue, esc bool
		haveName             bool
		nameStart, valStart  int
		name                 string
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		isNameChar := c > 32 && c < 127 && c != '"' && c != '=' && c != ']'

		switch {
		case inValue && esc:
			esc = false
		case inValue && c == '\\':
			esc = true
		case inValue && c == '"':
			pairs = append(pairs, record.Pair{
				Key:   name,
				Value: record.String(unescapeSDValue(body[valStart:i])),
			})
			haveName = false
			inValue = false
		case inValue:
			// value byte
		case inName && c == '=':
			name = body[nameStart:i]
			inName = false
			haveName = true
		case inName && isNameChar:
			// name byte
		case !inName && !haveName && c == ' ':
			// contextless spaces
		case !inName && !haveName && c == ']':
			rest = body[i+1:]
			return
		case !inName && !haveName && c == '"':
			// tolerate bogus entries with an extra quote
		case !inName && !haveName && isNameChar:
			inName = true
			nameStart = i
		case haveName && c == '"':
			inValue = true
			valStart = i + 1
		default:
			err = fmt.Errorf("format error in the structured data")
			return
		}
	}
	err = fmt.Errorf("missing ] after structured data")
	return
}

// Within a value, ], " and \ arrive backslash escaped. Unknown escapes keep the backslash.
func unescapeSDValue(value string) (unescaped string) {
	var b strings.Builder
	esc := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case !esc && c == '\\':
			esc = true
		case !esc:
			b.WriteByte(c)
		case c == '"' || c == '\\' || c == ']':
			b.WriteByte(c)
			esc = false
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
			esc = false
		}
	}
	if esc {
		b.WriteByte('\\')
	}
	unescaped = b.String()
	return
}

// Trims the message body and strips an optional leading BOM
func cleanMsg(msg string) (cleaned string) {
	cleaned = strings.TrimSpace(msg)
	cleaned = strings.TrimPrefix(cleaned, "\ufeff")
	return
}
