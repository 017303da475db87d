package framer

import "strconv"

// Payloads travel bare, the transport has its own message boundaries
type NoopFramer struct{}

func (NoopFramer) Frame(payload []byte) []byte {
	return payload
}

// One payload per LF terminated line
type LineFramer struct{}

func (LineFramer) Frame(payload []byte) []byte {
	return append(payload, '\n')
}

// NUL terminated payloads, the GELF TCP convention
type NulFramer struct{}

func (NulFramer) Frame(payload []byte) []byte {
	return append(payload, 0x00)
}

// RFC 6587 octet counting: the payload length in ASCII, a space, the payload.
// The trailing LF is part of the counted frame, mirroring what the syslen
// splitter accepts back.
type SyslenFramer struct{}

func (SyslenFramer) Frame(payload []byte) (framed []byte) {
	prefix := strconv.Itoa(len(payload)+1) + " "
	framed = make([]byte, 0, len(prefix)+len(payload)+1)
	framed = append(framed, prefix...)
	framed = append(framed, payload...)
	framed = append(framed, '\n')
	return
}
