package input

import (
	"context"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
)

// Moves one wire payload through decode, re-encode and into the broker.
// A rejected payload is logged and dropped, the session keeps running.
// Returns false only when the broker refused the payload at shutdown.
func (pipe Pipeline) handlePayload(ctx context.Context, payload []byte) (ok bool) {
	ok = true
	if len(payload) == 0 {
		return
	}

	rec, err := pipe.Decoder.Decode(payload)
	if err != nil {
		pipe.Metrics.DecodeFailures.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"%v: [%s]\n", err, previewPayload(payload))
		return
	}

	encoded, err := pipe.Encoder.Encode(rec)
	if err != nil {
		pipe.Metrics.DecodeFailures.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"%v: [%s]\n", err, previewPayload(payload))
		return
	}

	ok = pipe.Queue.Put(ctx, encoded)
	if ok {
		pipe.Metrics.Records.Add(1)
	}
	return
}

// Keeps warning lines bounded when a sender throws garbage at us
func previewPayload(payload []byte) (preview string) {
	const maxPreview = 200
	if len(payload) > maxPreview {
		preview = string(payload[:maxPreview]) + "..."
		return
	}
	preview = string(payload)
	return
}
