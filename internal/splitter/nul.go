package splitter

import (
	"bufio"
	"io"
)

// NUL delimited frames
type NulSplitter struct{}

func (NulSplitter) Split(reader *bufio.Reader) (payload []byte, err error) {
	frame, err := reader.ReadBytes(0x00)
	if err != nil {
		if err == io.EOF && len(frame) > 0 {
			payload = frame
		}
		return
	}
	payload = frame[:len(frame)-1]
	return
}
