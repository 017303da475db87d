package splitter

import (
	"bufio"
	"encoding/binary"
	"io"
)

const maxCapnpSegments = 512

// Length prefixed Cap'n Proto messages: a little-endian segment table
// followed by the segment data. The whole serialized message, table included,
// is the payload so the decoder can hand it to the capnp runtime untouched.
type CapnpSplitter struct {
	MaxLen int
}

func (s CapnpSplitter) Split(reader *bufio.Reader) (payload []byte, err error) {
	head := make([]byte, 4)
	if _, err = io.ReadFull(reader, head); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = framingErrorf("stream ended inside a segment table")
		}
		return
	}

	segCount := int(binary.LittleEndian.Uint32(head)) + 1
	if segCount > maxCapnpSegments {
		err = framingErrorf("segment count %d exceeds the %d limit", segCount, maxCapnpSegments)
		return
	}

	// the table holds segCount sizes, padded so the header is a whole number of words
	tableLen := 4 * segCount
	if (1+segCount)%2 != 0 {
		tableLen += 4
	}
	table := make([]byte, tableLen)
	if _, err = io.ReadFull(reader, table); err != nil {
		err = framingErrorf("stream ended inside a segment table")
		return
	}

	dataWords := 0
	for i := 0; i < segCount; i++ {
		dataWords += int(binary.LittleEndian.Uint32(table[4*i:]))
	}
	if dataWords*8 > s.MaxLen {
		err = framingErrorf("message size %d exceeds the %d byte limit", dataWords*8, s.MaxLen)
		return
	}

	payload = make([]byte, 4+tableLen+dataWords*8)
	copy(payload, head)
	copy(payload[4:], table)
	if _, err = io.ReadFull(reader, payload[4+tableLen:]); err != nil {
		payload = nil
		err = framingErrorf("stream ended inside segment data")
		return
	}
	return
}
