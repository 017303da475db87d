package output

import (
	"bufio"
	"context"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"time"
)

// Appends payloads to a file, optionally rotating at a size threshold.
// Data is flushed and fsynced when a payload is written at least one sync
// interval after the previous sync, and on close; there is no timer, so
// buffered data waits for the next payload or shutdown.
type FileOutput struct {
	cfg     config.OutputConfig
	deps    Deps
	file    *RotatingFile
	writer  *bufio.Writer
	metrics *sinkMetrics
}

func NewFileOutput(cfg config.OutputConfig, deps Deps) (new *FileOutput, err error) {
	file, err := OpenRotatingFile(cfg.FilePath, cfg.FileRotationSize, cfg.FileRotationMaxFiles, cfg.FileRotationCompress)
	if err != nil {
		return
	}

	new = &FileOutput{
		cfg:     cfg,
		deps:    deps,
		file:    file,
		metrics: newSinkMetrics("File"),
	}
	bufferSize := cfg.FileBufferSize
	if bufferSize <= 0 {
		bufferSize = 64 * 1024
	}
	new.writer = bufio.NewWriterSize(file, bufferSize)
	return
}

func (o *FileOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *FileOutput) Run(ctx context.Context) {
	defer o.close(ctx)

	lastSync := time.Now()
	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			return
		}
		if _, err := o.writer.Write(o.deps.Framer.Frame(payload)); err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"failed to write to output file: %v\n", err)
			o.metrics.Drops.Add(1)
			continue
		}
		o.metrics.Writes.Add(1)

		if time.Since(lastSync) >= o.cfg.FileSyncInterval {
			o.sync(ctx)
			lastSync = time.Now()
		}
	}
}

func (o *FileOutput) sync(ctx context.Context) {
	if err := o.writer.Flush(); err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed to flush output file: %v\n", err)
		return
	}
	if err := o.file.Sync(); err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed to fsync output file: %v\n", err)
		return
	}
	o.metrics.Batches.Add(1)
}

func (o *FileOutput) close(ctx context.Context) {
	o.sync(ctx)
	if err := o.file.Close(); err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"failed to close output file: %v\n", err)
	}
}
