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
	"os"
)

// Standard input treated as a single connection
type StdinInput struct {
	cfg  config.InputConfig
	pipe Pipeline
}

func (in *StdinInput) Run(ctx context.Context) (err error) {
	split, err := splitter.New(in.cfg.Framing, in.cfg.SyslenMax)
	if err != nil {
		return
	}

	reader := bufio.NewReader(os.Stdin)
	consecutiveFramingErrors := 0
	for {
		if ctx.Err() != nil {
			return
		}
		payload, serr := split.Split(reader)
		if len(payload) > 0 {
			if !in.pipe.handlePayload(ctx, payload) {
				return
			}
		}
		switch {
		case serr == nil:
			consecutiveFramingErrors = 0
		case splitter.IsFraming(serr):
			in.pipe.Metrics.FramingErrors.Add(1)
			consecutiveFramingErrors++
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", serr)
			if consecutiveFramingErrors >= global.MaxConsecutiveFramingErrors {
				err = serr
				return
			}
		case errors.Is(serr, io.EOF):
			return
		default:
			err = serr
			return
		}
	}
}
