package input

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"
	"net"
	"os"
	"strings"
)

// TLS terminated listener. Termination happens before the splitter sees any
// bytes; a failed handshake closes that connection and nothing else.
type TLSInput struct {
	cfg         config.InputConfig
	pipe        Pipeline
	tlsConfig   *tls.Config
	cooperative bool
}

func NewTLSInput(cfg config.InputConfig, pipe Pipeline, cooperative bool) (new *TLSInput, err error) {
	tlsConfig, err := serverTLSConfig(cfg)
	if err != nil {
		return
	}
	new = &TLSInput{
		cfg:         cfg,
		pipe:        pipe,
		tlsConfig:   tlsConfig,
		cooperative: cooperative,
	}
	return
}

func serverTLSConfig(cfg config.InputConfig) (tlsConfig *tls.Config, err error) {
	cert, err := tls.LoadX509KeyPair(cfg.TLSCert, cfg.TLSKey)
	if err != nil {
		err = fmt.Errorf("failed to load certificate or key: %v", err)
		return
	}
	tlsConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
	}
	if tlsConfig.MinVersion, err = config.TLSVersion(cfg.TLSMethod); err != nil {
		return
	}
	if tlsConfig.CipherSuites, err = cipherSuites(cfg.TLSCiphers); err != nil {
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
		tlsConfig.ClientCAs = pool
	}
	if cfg.TLSVerifyPeer {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return
}

// Resolves a colon or comma separated cipher list against the suites the
// runtime actually implements. TLS 1.3 suites are not configurable and an
// empty list keeps the stdlib defaults.
func cipherSuites(list string) (ids []uint16, err error) {
	if list == "" {
		return
	}
	byName := make(map[string]uint16)
	for _, suite := range tls.CipherSuites() {
		byName[suite.Name] = suite.ID
	}
	for _, name := range strings.FieldsFunc(list, func(r rune) bool { return r == ':' || r == ',' }) {
		id, known := byName[strings.TrimSpace(name)]
		if !known {
			err = fmt.Errorf("unknown cipher suite: %s", name)
			return
		}
		ids = append(ids, id)
	}
	return
}

func (in *TLSInput) Run(ctx context.Context) (err error) {
	if in.cfg.TLSCompression {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"tls_compression is not supported and will be ignored\n")
	}

	listener, err := net.Listen("tcp", in.cfg.Listen)
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %v", in.cfg.Listen, err)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Listening on %s (tls)\n", in.cfg.Listen)

	serveListener(ctx, tls.NewListener(listener, in.tlsConfig), in.cfg, in.pipe, in.cooperative)
	return
}
