package config

import "time"

// GatewayConfig holds settings for the HTTP gateway in front of the text
// transformation service.
type GatewayConfig struct {
	ListenAddr             string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required"`
	ReadTimeoutSeconds     int    `json:"read_timeout_seconds,omitempty" yaml:"read_timeout_seconds,omitempty" validate:"gte=1"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds,omitempty" yaml:"shutdown_timeout_seconds,omitempty" validate:"gte=1"`
}

// NewDefaultGatewayConfig creates default gateway configuration.
func NewDefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		ListenAddr:             ":3180",
		ReadTimeoutSeconds:     30,
		ShutdownTimeoutSeconds: 10,
	}
}

// ReadTimeout bounds reading an incoming request.
func (c GatewayConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (c GatewayConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
