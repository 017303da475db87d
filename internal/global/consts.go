package global

import "time"

const (
	// Descriptive names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgBaseName string = "flowgger"
	ProgVersion  string = "v0.3.0"

	// Context keys
	LoggerKey  CtxKey = "logger"
	LogTagsKey CtxKey = "logtags"

	DefaultListen       string = "0.0.0.0:6514"
	DefaultInputFormat  string = "rfc5424"
	DefaultInputFraming string = "line"
	DefaultOutputFormat string = "gelf"
	DefaultOutputType   string = "debug"
	DefaultQueueSize    int    = 65536
	DefaultSyslenMax    int    = 65536

	// A datagram is always exactly one payload
	MaxUDPPacketSize    int = 65527
	MaxCompressionRatio int = 5

	// Connections are torn down after this many back-to-back framing errors
	MaxConsecutiveFramingErrors int = 2

	DefaultRedisConnect  string = "127.0.0.1:6379"
	DefaultRedisQueueKey string = "logs"
	DefaultRedisThreads  int    = 1

	DefaultKafkaThreads  int           = 1
	DefaultKafkaCoalesce int           = 1
	DefaultKafkaTimeout  time.Duration = 60 * time.Second

	DefaultBeatsCoalesce int = 1

	DefaultFileRotationMaxFiles int           = 50
	DefaultFileSyncInterval     time.Duration = 1 * time.Second

	DefaultRecoveryDelayInit time.Duration = 1 * time.Millisecond
	DefaultRecoveryDelayMax  time.Duration = 10 * time.Second

	DefaultMetricsInterval time.Duration = 1 * time.Minute

	ShutdownTimeout time.Duration = 10 * time.Second

	// Namespacing name components
	NSTest    string = "Test"
	NSInput   string = "Input"
	NSOutput  string = "Output"
	NSQueue   string = "Queue"
	NSWorker  string = "Worker"
	NSSession string = "Session"
	NSMetric  string = "Metrics"
)
