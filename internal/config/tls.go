package config

import (
	"crypto/tls"
	"fmt"
	"strings"
)

// Maps a configured protocol floor like "TLSv1.2" to the stdlib constant
func TLSVersion(method string) (version uint16, err error) {
	switch strings.ToLower(method) {
	case "", "tlsv1.2", "tls1.2":
		version = tls.VersionTLS12
	case "tlsv1.3", "tls1.3":
		version = tls.VersionTLS13
	default:
		err = fmt.Errorf("unsupported TLS method: %s", method)
	}
	return
}
