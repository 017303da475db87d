package splitter

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
)

// Drains a splitter until EOF, collecting payloads and framing errors
func drain(t *testing.T, s Splitter, in string) (payloads []string, framingErrors int) {
	t.Helper()
	reader := bufio.NewReader(strings.NewReader(in))
	for {
		payload, err := s.Split(reader)
		if len(payload) > 0 {
			payloads = append(payloads, string(payload))
		}
		if err == nil {
			continue
		}
		if IsFraming(err) {
			framingErrors++
			continue
		}
		if err == io.EOF {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineSplitter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"TwoLines", "first\nsecond\n", []string{"first", "second"}},
		{"CRLF", "first\r\nsecond\r\n", []string{"first", "second"}},
		{"PartialFinalFrame", "first\nsecond", []string{"first", "second"}},
		{"EmptyLinesSkipped", "\n\nfirst\n", []string{"first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloads, framingErrors := drain(t, LineSplitter{}, tt.in)
			if framingErrors != 0 {
				t.Fatalf("expected no framing errors, got %d", framingErrors)
			}
			assertPayloads(t, payloads, tt.want)
		})
	}
}

func TestLineSplitterReassembly(t *testing.T) {
	// concatenating the outputs with their delimiters yields the input
	in := "alpha\nbeta\ngamma\n"
	payloads, _ := drain(t, LineSplitter{}, in)
	if got := strings.Join(payloads, "\n") + "\n"; got != in {
		t.Fatalf("reassembly mismatch: %q != %q", got, in)
	}
}

func TestNulSplitter(t *testing.T) {
	payloads, framingErrors := drain(t, NulSplitter{}, "first\x00second\x00tail")
	if framingErrors != 0 {
		t.Fatalf("expected no framing errors, got %d", framingErrors)
	}
	assertPayloads(t, payloads, []string{"first", "second", "tail"})
}

func TestSyslenSplitter(t *testing.T) {
	tests := []struct {
		name              string
		in                string
		want              []string
		wantFramingErrors int
	}{
		{"TwoFrames", "5 hello7 worlds!", []string{"hello", "worlds!"}, 0},
		// the interrupted frame is discarded, parsing resumes after the LF in
		// syslen mode, so the trailing garbage is a second framing error
		{"LFRecovery", "5 hel\nlo more", nil, 2},
		{"LFRecoveryNextFrame", "5 hel\n7 worlds!", []string{"worlds!"}, 1},
		{"BadLengthResync", "abc hello\n5 hello", []string{"hello"}, 1},
		{"OversizeLength", "99999999 x\n5 hello", []string{"hello"}, 1},
		{"TruncatedFrame", "10 short", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloads, framingErrors := drain(t, SyslenSplitter{MaxLen: 65536}, tt.in)
			if framingErrors != tt.wantFramingErrors {
				t.Fatalf("expected %d framing errors, got %d", tt.wantFramingErrors, framingErrors)
			}
			assertPayloads(t, payloads, tt.want)
		})
	}
}

func TestCapnpSplitterSingleSegment(t *testing.T) {
	// single segment message: table [count-1=0, size=2 words] then 16 data bytes
	var in bytes.Buffer
	in.Write([]byte{0, 0, 0, 0, 2, 0, 0, 0})
	data := bytes.Repeat([]byte{0xaa}, 16)
	in.Write(data)

	reader := bufio.NewReader(&in)
	payload, err := (CapnpSplitter{MaxLen: 65536}).Split(reader)
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	if len(payload) != 8+16 {
		t.Fatalf("expected a %d byte payload, got %d", 8+16, len(payload))
	}
	if !bytes.Equal(payload[8:], data) {
		t.Fatalf("segment data was not preserved")
	}
}

func TestCapnpSplitterTruncated(t *testing.T) {
	var in bytes.Buffer
	in.Write([]byte{0, 0, 0, 0, 2, 0, 0, 0})
	in.Write([]byte{0xaa}) // 1 of 16 declared bytes

	reader := bufio.NewReader(&in)
	_, err := (CapnpSplitter{MaxLen: 65536}).Split(reader)
	if !IsFraming(err) {
		t.Fatalf("expected a framing error, got '%v'", err)
	}
}

func TestNewUnknownFraming(t *testing.T) {
	if _, err := New("morse", 1024); err == nil {
		t.Fatalf("expected an error for an unknown framing scheme")
	}
}

func assertPayloads(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected payloads %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("payload %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
