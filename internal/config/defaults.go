package config

import "flowgger/internal/global"

// Sets defaults for any missing values
func (config *Config) setDefaults() {
	in := &config.Input
	if in.Type == "" {
		in.Type = "tls"
	}
	if in.Listen == "" {
		in.Listen = global.DefaultListen
	}
	if in.Format == "" {
		in.Format = global.DefaultInputFormat
	}
	if in.Framing == "" {
		if in.Format == "capnp" {
			in.Framing = "capnp"
		} else {
			in.Framing = global.DefaultInputFraming
		}
	}
	if in.QueueSize == 0 {
		in.QueueSize = global.DefaultQueueSize
	}
	if in.SyslenMax == 0 {
		in.SyslenMax = global.DefaultSyslenMax
	}
	if in.RedisConnect == "" {
		in.RedisConnect = global.DefaultRedisConnect
	}
	if in.RedisQueueKey == "" {
		in.RedisQueueKey = global.DefaultRedisQueueKey
	}
	if in.RedisThreads == 0 {
		in.RedisThreads = global.DefaultRedisThreads
	}

	out := &config.Output
	if out.Type == "" {
		out.Type = global.DefaultOutputType
	}
	if out.Format == "" {
		out.Format = global.DefaultOutputFormat
	}
	if out.Framing == "" {
		// The original defaults: binary formats and kafka carry bare payloads,
		// the debug output and ltsv are line oriented, gelf is NUL delimited.
		switch {
		case out.Format == "capnp" || out.Type == "kafka":
			out.Framing = "noop"
		case out.Type == "debug" || out.Format == "ltsv":
			out.Framing = "line"
		case out.Format == "gelf":
			out.Framing = "nul"
		default:
			out.Framing = "noop"
		}
	}
	if out.KafkaThreads == 0 {
		out.KafkaThreads = global.DefaultKafkaThreads
	}
	if out.KafkaCoalesce == 0 {
		out.KafkaCoalesce = global.DefaultKafkaCoalesce
	}
	if out.KafkaTimeout == 0 {
		out.KafkaTimeout = global.DefaultKafkaTimeout
	}
	if out.KafkaAcks == "" {
		out.KafkaAcks = AcksNone
	}
	if out.FileRotationMaxFiles == 0 {
		out.FileRotationMaxFiles = global.DefaultFileRotationMaxFiles
	}
	if out.FileSyncInterval == 0 {
		out.FileSyncInterval = global.DefaultFileSyncInterval
	}
	if out.BeatsCoalesce == 0 {
		out.BeatsCoalesce = global.DefaultBeatsCoalesce
	}
	if out.RecoveryDelayInit == 0 {
		out.RecoveryDelayInit = global.DefaultRecoveryDelayInit
	}
	if out.RecoveryDelayMax == 0 {
		out.RecoveryDelayMax = global.DefaultRecoveryDelayMax
	}

	if config.Metrics.Interval == 0 {
		config.Metrics.Interval = global.DefaultMetricsInterval
	}
}
