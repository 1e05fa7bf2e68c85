package session

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/goburrow/serial"
)

var ErrNoTransport = errors.New("session: no transport configured")

// TransportConfig selects and parameterizes the byte-stream transport.
// Exactly one of TCPAddress and SerialDevice must be set.
type TransportConfig struct {
	// TCPAddress is the host:port of a TCP<->RS485 bridge.
	TCPAddress string
	// SerialDevice is a local serial device path for a direct link.
	SerialDevice string
	// SerialBaud is the line rate of the direct link.
	SerialBaud int
	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration
	// SerialReadTimeout bounds individual serial reads; the serial
	// driver has no per-call deadlines, so this is the only way a dead
	// link surfaces on that transport.
	SerialReadTimeout time.Duration
}

// WithDefaults fills unset fields with the protocol's usual link
// parameters (19200 8N1).
func (c TransportConfig) WithDefaults() TransportConfig {
	if c.SerialBaud == 0 {
		c.SerialBaud = 19200
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.SerialReadTimeout <= 0 {
		c.SerialReadTimeout = 10 * time.Second
	}
	return c
}

// Dial establishes the configured transport and binds a session to it.
func Dial(cfg TransportConfig, device byte) (*Session, error) {
	cfg = cfg.WithDefaults()
	switch {
	case cfg.TCPAddress != "":
		conn, err := net.DialTimeout("tcp", cfg.TCPAddress, cfg.DialTimeout)
		if err != nil {
			return nil, fmt.Errorf("session: dial tcp %s: %w", cfg.TCPAddress, err)
		}
		return New(conn, device), nil

	case cfg.SerialDevice != "":
		port, err := serial.Open(&serial.Config{
			Address:  cfg.SerialDevice,
			BaudRate: cfg.SerialBaud,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  cfg.SerialReadTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("session: open serial %s: %w", cfg.SerialDevice, err)
		}
		return New(port, device), nil

	default:
		return nil, ErrNoTransport
	}
}
