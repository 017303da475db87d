package input

import (
	"bytes"
	"context"
	"errors"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"
	"io"
	"net"

	"github.com/klauspost/compress/zlib"
)

// Each datagram is exactly one payload, there is no splitter.
// GELF senders may zlib compress datagrams; a zlib header is sniffed and
// the payload inflated with a bounded expansion ratio before decoding.
type UDPInput struct {
	cfg  config.InputConfig
	pipe Pipeline
}

func (in *UDPInput) Run(ctx context.Context) (err error) {
	addr, err := net.ResolveUDPAddr("udp", in.cfg.Listen)
	if err != nil {
		err = fmt.Errorf("invalid listen address %s: %v", in.cfg.Listen, err)
		return
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %v", in.cfg.Listen, err)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Listening on %s (udp)\n", in.cfg.Listen)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buffer := make([]byte, global.MaxUDPPacketSize)
	for {
		length, _, rerr := conn.ReadFromUDP(buffer)
		if rerr != nil {
			if ctx.Err() != nil || errors.Is(rerr, net.ErrClosed) {
				return
			}
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"failed reading data from socket: %v\n", rerr)
			continue
		}

		payload, perr := maybeInflate(buffer[:length])
		if perr != nil {
			in.pipe.Metrics.DecodeFailures.Add(1)
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", perr)
			continue
		}
		if !in.pipe.handlePayload(ctx, payload) {
			return
		}
	}
}

// Inflates a datagram when it starts with a zlib header, copies it otherwise.
// The datagram buffer is reused, so the payload always has to be owned memory.
func maybeInflate(datagram []byte) (payload []byte, err error) {
	compressed := len(datagram) > 2 && datagram[0] == 0x78 &&
		(datagram[1] == 0x01 || datagram[1] == 0x9c || datagram[1] == 0xda)
	if !compressed {
		payload = append([]byte(nil), datagram...)
		return
	}

	reader, err := zlib.NewReader(bytes.NewReader(datagram))
	if err != nil {
		err = fmt.Errorf("corrupted compressed record")
		return
	}
	defer reader.Close()

	limit := int64(global.MaxUDPPacketSize * global.MaxCompressionRatio)
	payload, err = io.ReadAll(io.LimitReader(reader, limit))
	if err != nil {
		payload = nil
		err = fmt.Errorf("corrupted compressed record")
	}
	return
}
