package input

import (
	"bufio"
	"context"
	"errors"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/splitter"
	"io"
	"net"
	"os"
	"runtime/debug"
	"time"
)

// Runs one connection: split frames, decode, enqueue.
// The session owns its read buffer and splitter state exclusively, nothing
// here is shared with other sessions.
func runSession(ctx context.Context, cfg config.InputConfig, pipe Pipeline, conn net.Conn) {
	defer conn.Close()
	defer func() {
		// a poisoned frame must not take the whole daemon down
		if fatal := recover(); fatal != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in connection session: %v\n%s", fatal, debug.Stack())
		}
	}()

	pipe.Metrics.Sessions.Add(1)
	ctx = logctx.AppendCtxTag(ctx, global.NSSession)
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
		"Connection from [%s]\n", conn.RemoteAddr())

	split, err := splitter.New(cfg.Framing, cfg.SyslenMax)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v\n", err)
		return
	}

	reader := bufio.NewReader(conn)
	consecutiveFramingErrors := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if cfg.Timeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(cfg.Timeout))
		}

		payload, err := split.Split(reader)
		if len(payload) > 0 {
			if !pipe.handlePayload(ctx, payload) {
				return
			}
		}
		switch {
		case err == nil:
			consecutiveFramingErrors = 0
		case splitter.IsFraming(err):
			pipe.Metrics.FramingErrors.Add(1)
			consecutiveFramingErrors++
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", err)
			if consecutiveFramingErrors >= global.MaxConsecutiveFramingErrors {
				logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
					"%d framing errors in a row - closing connection to [%s]\n",
					consecutiveFramingErrors, conn.RemoteAddr())
				return
			}
		case errors.Is(err, io.EOF):
			return
		case errors.Is(err, os.ErrDeadlineExceeded):
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog,
				"Client hasn't sent any data for a while - closing idle connection to [%s]\n",
				conn.RemoteAddr())
			return
		default:
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
					"transport error, closing connection to [%s]: %v\n", conn.RemoteAddr(), err)
			}
			return
		}
	}
}
