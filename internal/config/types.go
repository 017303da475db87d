package config

import (
	"fmt"
	"time"
)

// TOMLConfig is the raw shape of the configuration file.
// This is dumb storage, validation happens once it is turned into a Config.
type TOMLConfig struct {
	Input   InputSection   `toml:"input"`
	Output  OutputSection  `toml:"output"`
	Metrics MetricsSection `toml:"metrics"`
}

type InputSection struct {
	Type           string            `toml:"type"`
	Listen         string            `toml:"listen"`
	Timeout        int               `toml:"timeout"`
	Format         string            `toml:"format"`
	Framing        string            `toml:"framing"`
	QueueSize      int               `toml:"queuesize"`
	SyslenMax      int               `toml:"syslen_max"`
	TLSCert        string            `toml:"tls_cert"`
	TLSKey         string            `toml:"tls_key"`
	TLSCAFile      string            `toml:"tls_ca_file"`
	TLSVerifyPeer  bool              `toml:"tls_verify_peer"`
	TLSCompression bool              `toml:"tls_compression"`
	TLSMethod      string            `toml:"tls_method"`
	TLSCiphers     string            `toml:"tls_ciphers"`
	RedisConnect   string            `toml:"redis_connect"`
	RedisQueueKey  string            `toml:"redis_queue_key"`
	RedisThreads   int               `toml:"redis_threads"`
	CoThreads      int               `toml:"co_threads"`
	LTSVSchema     map[string]string `toml:"ltsv_schema"`
	LTSVSuffixes   map[string]string `toml:"ltsv_suffixes"`
}

type OutputSection struct {
	Type    string   `toml:"type"`
	Format  string   `toml:"format"`
	Framing string   `toml:"framing"`
	Connect []string `toml:"connect"`
	Timeout int      `toml:"timeout"`

	KafkaBrokers  []string `toml:"kafka_brokers"`
	KafkaTopic    string   `toml:"kafka_topic"`
	KafkaThreads  int      `toml:"kafka_threads"`
	KafkaCoalesce int      `toml:"kafka_coalesce"`
	KafkaTimeout  int      `toml:"kafka_timeout"`
	KafkaAcks     AcksMode `toml:"kafka_acks"`

	FilePath             string `toml:"file_path"`
	FileBufferSize       int    `toml:"file_buffer_size"`
	FileRotationSize     int    `toml:"file_rotation_size"`
	FileRotationMaxFiles int    `toml:"file_rotation_maxfiles"`
	FileRotationCompress bool   `toml:"file_rotation_compress"`
	FileSyncInterval     int    `toml:"file_sync_interval"`

	NATSURL     string `toml:"nats_url"`
	NATSSubject string `toml:"nats_subject"`

	BeatsConnect  string `toml:"beats_connect"`
	BeatsCoalesce int    `toml:"beats_coalesce"`

	TLSCAFile         string `toml:"tls_ca_file"`
	TLSVerifyPeer     bool   `toml:"tls_verify_peer"`
	TLSMethod         string `toml:"tls_method"`
	Async             bool   `toml:"async"`
	RecoveryDelayInit int    `toml:"recovery_delay_init"`
	RecoveryDelayMax  int    `toml:"recovery_delay_max"`

	GelfExtra  map[string]string `toml:"gelf_extra"`
	CapnpExtra map[string]string `toml:"capnp_extra"`
}

type MetricsSection struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// AcksMode accepts both integer and string spellings of the Kafka ack level
type AcksMode string

const (
	AcksNone   AcksMode = "0"
	AcksLeader AcksMode = "1"
	AcksAll    AcksMode = "all"
)

func (mode *AcksMode) UnmarshalTOML(value any) (err error) {
	switch v := value.(type) {
	case int64:
		switch v {
		case 0:
			*mode = AcksNone
		case 1:
			*mode = AcksLeader
		case -1:
			*mode = AcksAll
		default:
			err = fmt.Errorf("kafka_acks must be 0, 1 or -1, got %d", v)
		}
	case string:
		switch v {
		case "0", "1", "all":
			*mode = AcksMode(v)
		default:
			err = fmt.Errorf("kafka_acks must be \"0\", \"1\" or \"all\", got %q", v)
		}
	default:
		err = fmt.Errorf("kafka_acks must be an integer or a string")
	}
	return
}

// Config is the validated daemon configuration derived from a TOMLConfig
type Config struct {
	Input   InputConfig
	Output  OutputConfig
	Metrics MetricsConfig
}

type InputConfig struct {
	Type           string
	Listen         string
	Timeout        time.Duration
	Format         string
	Framing        string
	QueueSize      int
	SyslenMax      int
	TLSCert        string
	TLSKey         string
	TLSCAFile      string
	TLSVerifyPeer  bool
	TLSCompression bool
	TLSMethod      string
	TLSCiphers     string
	RedisConnect   string
	RedisQueueKey  string
	RedisThreads   int
	CoThreads      int
	LTSVSchema     map[string]string
	LTSVSuffixes   map[string]string
}

type OutputConfig struct {
	Type    string
	Format  string
	Framing string
	Connect []string
	Timeout time.Duration

	KafkaBrokers  []string
	KafkaTopic    string
	KafkaThreads  int
	KafkaCoalesce int
	KafkaTimeout  time.Duration
	KafkaAcks     AcksMode

	FilePath             string
	FileBufferSize       int
	FileRotationSize     int
	FileRotationMaxFiles int
	FileRotationCompress bool
	FileSyncInterval     time.Duration

	NATSURL     string
	NATSSubject string

	BeatsConnect  string
	BeatsCoalesce int

	TLSCAFile         string
	TLSVerifyPeer     bool
	TLSMethod         string
	Async             bool
	RecoveryDelayInit time.Duration
	RecoveryDelayMax  time.Duration

	GelfExtra  map[string]string
	CapnpExtra map[string]string
}

type MetricsConfig struct {
	Enabled  bool
	Interval time.Duration
}
