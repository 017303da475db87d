package output

import (
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"flowgger/internal/metrics"
	"fmt"
	"math/rand"
	"net"
	"os"
	"time"
)

// Ships framed payloads to a downstream flowgger over TLS. One of the
// configured endpoints is picked at random per connection; a broken
// connection is re-established with exponential backoff.
type TLSOutput struct {
	cfg       config.OutputConfig
	deps      Deps
	tlsConfig *tls.Config
	metrics   *sinkMetrics
}

func NewTLSOutput(cfg config.OutputConfig, deps Deps) (new *TLSOutput, err error) {
	tlsConfig, err := clientTLSConfig(cfg)
	if err != nil {
		return
	}
	new = &TLSOutput{
		cfg:       cfg,
		deps:      deps,
		tlsConfig: tlsConfig,
		metrics:   newSinkMetrics("TLS"),
	}
	return
}

func clientTLSConfig(cfg config.OutputConfig) (tlsConfig *tls.Config, err error) {
	tlsConfig = &tls.Config{
		InsecureSkipVerify: !cfg.TLSVerifyPeer,
	}
	if tlsConfig.MinVersion, err = config.TLSVersion(cfg.TLSMethod); err != nil {
		return
	}
	if cfg.TLSCAFile != "" {
		pem, rerr := os.ReadFile(cfg.TLSCAFile)
		if rerr != nil {
			err = fmt.Errorf("failed to read CA file '%s': %v", cfg.TLSCAFile, rerr)
			return
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			err = fmt.Errorf("no usable certificates in CA file '%s'", cfg.TLSCAFile)
			return
		}
		tlsConfig.RootCAs = pool
	}
	return
}

func (o *TLSOutput) Metrics() metrics.Collector {
	return o.metrics
}

func (o *TLSOutput) Run(ctx context.Context) {
	delay := o.cfg.RecoveryDelayInit
	for {
		if ctx.Err() != nil {
			return
		}
		connect := o.cfg.Connect[rand.Intn(len(o.cfg.Connect))]
		err := o.handleConnection(ctx, connect)
		if err == nil {
			return
		}
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"connection to %s lost, reconnecting in %s: %v\n", connect, delay, err)
		o.metrics.Retries.Add(1)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > o.cfg.RecoveryDelayMax {
			delay = o.cfg.RecoveryDelayMax
		}
	}
}

// Returns nil on clean shutdown, an error when the connection should be retried
func (o *TLSOutput) handleConnection(ctx context.Context, connect string) (err error) {
	dialer := &net.Dialer{Timeout: o.cfg.Timeout}
	hostname, _, _ := net.SplitHostPort(connect)
	tlsConfig := o.tlsConfig.Clone()
	tlsConfig.ServerName = hostname

	conn, err := tls.DialWithDialer(dialer, "tcp", connect, tlsConfig)
	if err != nil {
		err = fmt.Errorf("TLS handshake failed: %v", err)
		return
	}
	defer conn.Close()
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Connected to %s\n", connect)

	writer := bufio.NewWriter(conn)
	for {
		payload, ok := o.deps.Queue.Get(ctx)
		if !ok {
			_ = writer.Flush()
			return
		}
		if _, err = writer.Write(o.deps.Framer.Frame(payload)); err != nil {
			o.metrics.Drops.Add(1)
			return
		}
		if !o.cfg.Async {
			if err = writer.Flush(); err != nil {
				o.metrics.Drops.Add(1)
				return
			}
		}
		o.metrics.Writes.Add(1)
		o.metrics.Batches.Add(1)
	}
}
