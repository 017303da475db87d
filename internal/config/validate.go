package config

import (
	"context"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"

	"github.com/pbnjay/memory"
)

var validInputTypes = map[string]bool{
	"tcp": true, "tcp_co": true, "tls": true, "tls_co": true,
	"udp": true, "redis": true, "stdin": true,
}

var validInputFormats = map[string]bool{
	"rfc5424": true, "rfc3164": true, "gelf": true, "ltsv": true, "capnp": true,
}

var validFramings = map[string]bool{
	"line": true, "nul": true, "syslen": true, "capnp": true,
}

var validOutputTypes = map[string]bool{
	"kafka": true, "debug": true, "stdout": true, "file": true,
	"nats": true, "tls": true, "beats": true,
}

var validOutputFormats = map[string]bool{
	"gelf": true, "capnp": true, "rfc5424": true, "rfc3164": true,
	"json": true, "ltsv": true, "passthrough": true,
}

var validOutputFramings = map[string]bool{
	"noop": true, "line": true, "nul": true, "syslen": true,
}

var validSchemaTypes = map[string]bool{
	"string": true, "bool": true, "f64": true, "i64": true, "u64": true,
}

// Rejects configurations the pipeline cannot run with
func (config *Config) validate() (err error) {
	in := &config.Input
	if !validInputTypes[in.Type] {
		err = fmt.Errorf("invalid input type: %s", in.Type)
		return
	}
	if !validInputFormats[in.Format] {
		err = fmt.Errorf("invalid input format: %s", in.Format)
		return
	}
	if !validFramings[in.Framing] {
		err = fmt.Errorf("invalid input framing: %s", in.Framing)
		return
	}
	if in.QueueSize <= 0 {
		err = fmt.Errorf("queuesize must be a positive integer")
		return
	}
	if in.SyslenMax <= 0 {
		err = fmt.Errorf("syslen_max must be a positive integer")
		return
	}
	if (in.Type == "tls" || in.Type == "tls_co") && (in.TLSCert == "" || in.TLSKey == "") {
		err = fmt.Errorf("tls_cert and tls_key are required for input type %s", in.Type)
		return
	}
	if in.RedisThreads <= 0 {
		err = fmt.Errorf("redis_threads must be a positive integer")
		return
	}
	for name, sdtype := range in.LTSVSchema {
		if !validSchemaTypes[sdtype] {
			err = fmt.Errorf("unsupported type in ltsv_schema for name [%s]: %s", name, sdtype)
			return
		}
	}
	for sdtype := range in.LTSVSuffixes {
		if sdtype == "string" {
			err = fmt.Errorf("strings cannot be suffixed")
			return
		}
		if !validSchemaTypes[sdtype] {
			err = fmt.Errorf("unsupported type in ltsv_suffixes: %s", sdtype)
			return
		}
	}

	out := &config.Output
	if out.Type == "stdout" {
		out.Type = "debug"
	}
	if !validOutputTypes[out.Type] {
		err = fmt.Errorf("invalid output type: %s", out.Type)
		return
	}
	if !validOutputFormats[out.Format] {
		err = fmt.Errorf("invalid output format: %s", out.Format)
		return
	}
	if !validOutputFramings[out.Framing] {
		err = fmt.Errorf("invalid output framing: %s", out.Framing)
		return
	}
	switch out.Type {
	case "kafka":
		if len(out.KafkaBrokers) == 0 {
			err = fmt.Errorf("kafka_brokers is required for the kafka output")
			return
		}
		if out.KafkaTopic == "" {
			err = fmt.Errorf("kafka_topic is required for the kafka output")
			return
		}
		if out.KafkaThreads <= 0 || out.KafkaCoalesce <= 0 {
			err = fmt.Errorf("kafka_threads and kafka_coalesce must be positive integers")
			return
		}
	case "file":
		if out.FilePath == "" {
			err = fmt.Errorf("file_path is required for the file output")
			return
		}
	case "nats":
		if out.NATSURL == "" || out.NATSSubject == "" {
			err = fmt.Errorf("nats_url and nats_subject are required for the nats output")
			return
		}
	case "tls":
		if len(out.Connect) == 0 {
			err = fmt.Errorf("connect is required for the tls output")
			return
		}
	case "beats":
		if out.BeatsConnect == "" {
			err = fmt.Errorf("beats_connect is required for the beats output")
			return
		}
	}
	if out.Format == "passthrough" && in.Format == "capnp" {
		err = fmt.Errorf("passthrough output cannot relay capnp input")
		return
	}
	return
}

// Warns when the worst case queue footprint does not fit in free memory.
// Not fatal, a mostly idle queue never reaches the worst case.
func (config *Config) CheckMemoryBudget(ctx context.Context) {
	worstCase := uint64(config.Input.QueueSize) * uint64(config.Input.SyslenMax)
	free := memory.FreeMemory()
	if free > 0 && worstCase > free {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"queuesize %d x frame limit %d may need %d bytes, only %d free\n",
			config.Input.QueueSize, config.Input.SyslenMax, worstCase, free)
	}
}
