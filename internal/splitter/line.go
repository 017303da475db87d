package splitter

import (
	"bufio"
	"io"
)

// LF delimited frames, CR+LF tolerated
type LineSplitter struct{}

func (LineSplitter) Split(reader *bufio.Reader) (payload []byte, err error) {
	line, err := reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			// partial final frame is still a record
			payload = trimEOL(line)
		}
		return
	}
	payload = trimEOL(line)
	return
}

func trimEOL(line []byte) (trimmed []byte) {
	trimmed = line
	if n := len(trimmed); n > 0 && trimmed[n-1] == '\n' {
		trimmed = trimmed[:n-1]
	}
	if n := len(trimmed); n > 0 && trimmed[n-1] == '\r' {
		trimmed = trimmed[:n-1]
	}
	return
}
