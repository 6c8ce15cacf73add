package textaction

import (
	"crypto/tls"
	"net"
	"net/http"

	"github.com/aleister1102/redline/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// Doer is the minimal transport surface the client needs. *http.Client
// satisfies it; tests substitute a counting fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newTransportClient builds the underlying HTTP client from configuration.
// The overall request deadline is enforced per-request via context, not via
// http.Client.Timeout, so cancellation aborts the transport operation.
func newTransportClient(cfg config.ClientConfig, logger zerolog.Logger) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout(),
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout(),
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout(),
			KeepAlive: cfg.KeepAlive(),
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	if cfg.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	return &http.Client{Transport: transport}
}
