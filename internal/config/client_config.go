package config

import "time"

// ClientConfig holds settings for the text action client and its HTTP
// transport.
type ClientConfig struct {
	Endpoint                   string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"required,url"`
	TimeoutSeconds             int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=1"`
	DialTimeoutSeconds         int    `json:"dial_timeout_seconds,omitempty" yaml:"dial_timeout_seconds,omitempty" validate:"gte=1"`
	TLSHandshakeTimeoutSeconds int    `json:"tls_handshake_timeout_seconds,omitempty" yaml:"tls_handshake_timeout_seconds,omitempty" validate:"gte=1"`
	IdleConnTimeoutSeconds     int    `json:"idle_conn_timeout_seconds,omitempty" yaml:"idle_conn_timeout_seconds,omitempty" validate:"gte=1"`
	KeepAliveSeconds           int    `json:"keep_alive_seconds,omitempty" yaml:"keep_alive_seconds,omitempty" validate:"gte=1"`
	MaxIdleConns               int    `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty" validate:"gte=0"`
	MaxIdleConnsPerHost        int    `json:"max_idle_conns_per_host,omitempty" yaml:"max_idle_conns_per_host,omitempty" validate:"gte=0"`
	EnableHTTP2                bool   `json:"enable_http2,omitempty" yaml:"enable_http2,omitempty"`
	InsecureSkipVerify         bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// NewDefaultClientConfig creates default client configuration. The 60 second
// request timeout reflects model-latency realities.
func NewDefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint:                   "http://localhost:8080/api/agents/text-action",
		TimeoutSeconds:             60,
		DialTimeoutSeconds:         10,
		TLSHandshakeTimeoutSeconds: 10,
		IdleConnTimeoutSeconds:     90,
		KeepAliveSeconds:           30,
		MaxIdleConns:               100,
		MaxIdleConnsPerHost:        10,
		EnableHTTP2:                true,
	}
}

// Timeout is the upper bound on one round trip.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DialTimeout bounds connection establishment.
func (c ClientConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSeconds) * time.Second
}

// TLSHandshakeTimeout bounds the TLS handshake.
func (c ClientConfig) TLSHandshakeTimeout() time.Duration {
	return time.Duration(c.TLSHandshakeTimeoutSeconds) * time.Second
}

// IdleConnTimeout bounds how long idle connections are kept.
func (c ClientConfig) IdleConnTimeout() time.Duration {
	return time.Duration(c.IdleConnTimeoutSeconds) * time.Second
}

// KeepAlive is the TCP keep-alive interval.
func (c ClientConfig) KeepAlive() time.Duration {
	return time.Duration(c.KeepAliveSeconds) * time.Second
}
