package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Loads TOML config from file
func Load(path string) (cfg TOMLConfig, err error) {
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		err = fmt.Errorf("failed to read config file '%s': %v", path, err)
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		err = fmt.Errorf("unknown option '%s' in '%s'", undecoded[0].String(), path)
		return
	}
	return
}

// Loads TOML config from a string, used by tests
func LoadString(text string) (cfg TOMLConfig, err error) {
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		err = fmt.Errorf("invalid config syntax: %v", err)
		return
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		err = fmt.Errorf("unknown option '%s'", undecoded[0].String())
		return
	}
	return
}

// Parses TOML config into daemon config
func (cfg TOMLConfig) NewDaemonConf() (config Config, err error) {
	config.Input = InputConfig{
		Type:           cfg.Input.Type,
		Listen:         cfg.Input.Listen,
		Timeout:        time.Duration(cfg.Input.Timeout) * time.Second,
		Format:         cfg.Input.Format,
		Framing:        cfg.Input.Framing,
		QueueSize:      cfg.Input.QueueSize,
		SyslenMax:      cfg.Input.SyslenMax,
		TLSCert:        cfg.Input.TLSCert,
		TLSKey:         cfg.Input.TLSKey,
		TLSCAFile:      cfg.Input.TLSCAFile,
		TLSVerifyPeer:  cfg.Input.TLSVerifyPeer,
		TLSCompression: cfg.Input.TLSCompression,
		TLSMethod:      cfg.Input.TLSMethod,
		TLSCiphers:     cfg.Input.TLSCiphers,
		RedisConnect:   cfg.Input.RedisConnect,
		RedisQueueKey:  cfg.Input.RedisQueueKey,
		RedisThreads:   cfg.Input.RedisThreads,
		CoThreads:      cfg.Input.CoThreads,
		LTSVSchema:     cfg.Input.LTSVSchema,
		LTSVSuffixes:   cfg.Input.LTSVSuffixes,
	}

	config.Output = OutputConfig{
		Type:                 cfg.Output.Type,
		Format:               cfg.Output.Format,
		Framing:              cfg.Output.Framing,
		Connect:              cfg.Output.Connect,
		Timeout:              time.Duration(cfg.Output.Timeout) * time.Second,
		KafkaBrokers:         cfg.Output.KafkaBrokers,
		KafkaTopic:           cfg.Output.KafkaTopic,
		KafkaThreads:         cfg.Output.KafkaThreads,
		KafkaCoalesce:        cfg.Output.KafkaCoalesce,
		KafkaTimeout:         time.Duration(cfg.Output.KafkaTimeout) * time.Millisecond,
		KafkaAcks:            cfg.Output.KafkaAcks,
		FilePath:             cfg.Output.FilePath,
		FileBufferSize:       cfg.Output.FileBufferSize,
		FileRotationSize:     cfg.Output.FileRotationSize,
		FileRotationMaxFiles: cfg.Output.FileRotationMaxFiles,
		FileRotationCompress: cfg.Output.FileRotationCompress,
		FileSyncInterval:     time.Duration(cfg.Output.FileSyncInterval) * time.Millisecond,
		NATSURL:              cfg.Output.NATSURL,
		NATSSubject:          cfg.Output.NATSSubject,
		BeatsConnect:         cfg.Output.BeatsConnect,
		BeatsCoalesce:        cfg.Output.BeatsCoalesce,
		TLSCAFile:            cfg.Output.TLSCAFile,
		TLSVerifyPeer:        cfg.Output.TLSVerifyPeer,
		TLSMethod:            cfg.Output.TLSMethod,
		Async:                cfg.Output.Async,
		RecoveryDelayInit:    time.Duration(cfg.Output.RecoveryDelayInit) * time.Millisecond,
		RecoveryDelayMax:     time.Duration(cfg.Output.RecoveryDelayMax) * time.Millisecond,
		GelfExtra:            cfg.Output.GelfExtra,
		CapnpExtra:           cfg.Output.CapnpExtra,
	}

	config.Metrics.Enabled = cfg.Metrics.Enabled
	if cfg.Metrics.Interval != "" {
		config.Metrics.Interval, err = time.ParseDuration(cfg.Metrics.Interval)
		if err != nil {
			err = fmt.Errorf("failed to parse metrics interval: %v", err)
			return
		}
	}

	config.setDefaults()
	err = config.validate()
	return
}
