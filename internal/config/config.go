// Package config loads and validates the TOML runtime configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"auroractl/internal/poller"
	"auroractl/internal/pvoutput"
	"auroractl/internal/session"
)

// Duration accepts Go duration strings ("30s", "1m") in TOML values.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Transport TransportConfig `toml:"transport"`
	Inverter  InverterConfig  `toml:"inverter"`
	Poll      PollConfig      `toml:"poll"`
	PVOutput  PVOutputConfig  `toml:"pvoutput"`
	Reconnect ReconnectConfig `toml:"reconnect"`
}

// TransportConfig selects exactly one of a TCP bridge or a local serial
// device.
type TransportConfig struct {
	TCPAddress   string   `toml:"tcp_address"`
	SerialDevice string   `toml:"serial_device"`
	SerialBaud   int      `toml:"serial_baud"`
	DialTimeout  Duration `toml:"dial_timeout"`
}

type InverterConfig struct {
	Address uint8 `toml:"address"`
}

type PollConfig struct {
	Interval          Duration `toml:"interval"`
	TimeoutMultiplier int      `toml:"timeout_multiplier"`
	WarmupTicks       int      `toml:"warmup_ticks"`
}

// PVOutputConfig is optional: leave both credentials empty to disable
// uploads entirely.
type PVOutputConfig struct {
	SystemID string `toml:"system_id"`
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
}

func (c PVOutputConfig) Enabled() bool {
	return c.SystemID != "" || c.APIKey != ""
}

// ReconnectConfig enables the supervised reconnect loop. Off by default:
// a failed run then ends the process.
type ReconnectConfig struct {
	Enabled  bool     `toml:"enabled"`
	MinDelay Duration `toml:"min_delay"`
	MaxDelay Duration `toml:"max_delay"`
}

// Load reads path, applies defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) WithDefaults() Config {
	if c.Inverter.Address == 0 {
		c.Inverter.Address = 2
	}
	if c.Poll.Interval == 0 {
		c.Poll.Interval = Duration(30 * time.Second)
	}
	if c.Poll.TimeoutMultiplier == 0 {
		c.Poll.TimeoutMultiplier = 4
	}
	if c.Poll.WarmupTicks == 0 {
		c.Poll.WarmupTicks = 2
	}
	if c.Transport.SerialBaud == 0 {
		c.Transport.SerialBaud = 19200
	}
	if c.Transport.DialTimeout == 0 {
		c.Transport.DialTimeout = Duration(10 * time.Second)
	}
	if c.Reconnect.MinDelay == 0 {
		c.Reconnect.MinDelay = Duration(time.Second)
	}
	if c.Reconnect.MaxDelay == 0 {
		c.Reconnect.MaxDelay = Duration(time.Minute)
	}
	return c
}

func (c Config) Validate() error {
	tcp := strings.TrimSpace(c.Transport.TCPAddress) != ""
	ser := strings.TrimSpace(c.Transport.SerialDevice) != ""
	if tcp == ser {
		return fmt.Errorf("config: exactly one of transport.tcp_address and transport.serial_device is required")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("config: poll.interval must be > 0")
	}
	if c.Poll.TimeoutMultiplier <= 0 {
		return fmt.Errorf("config: poll.timeout_multiplier must be > 0")
	}
	if c.Poll.WarmupTicks < 0 {
		return fmt.Errorf("config: poll.warmup_ticks must be >= 0")
	}
	if c.PVOutput.Enabled() && (c.PVOutput.SystemID == "" || c.PVOutput.APIKey == "") {
		return fmt.Errorf("config: pvoutput needs both system_id and api_key")
	}
	if c.Reconnect.Enabled && c.Reconnect.MinDelay > c.Reconnect.MaxDelay {
		return fmt.Errorf("config: reconnect.min_delay exceeds reconnect.max_delay")
	}
	return nil
}

// SessionTransport converts the transport section into dial parameters.
func (c Config) SessionTransport() session.TransportConfig {
	return session.TransportConfig{
		TCPAddress:   c.Transport.TCPAddress,
		SerialDevice: c.Transport.SerialDevice,
		SerialBaud:   c.Transport.SerialBaud,
		DialTimeout:  c.Transport.DialTimeout.Std(),
	}
}

// PollerConfig converts the poll section into poller parameters.
func (c Config) PollerConfig() poller.Config {
	return poller.Config{
		Interval:          c.Poll.Interval.Std(),
		TimeoutMultiplier: c.Poll.TimeoutMultiplier,
		WarmupTicks:       c.Poll.WarmupTicks,
	}
}

// PVOutputClientConfig converts the pvoutput section into client
// parameters. Only meaningful when Enabled reports true.
func (c Config) PVOutputClientConfig() pvoutput.Config {
	return pvoutput.Config{
		SystemID: c.PVOutput.SystemID,
		APIKey:   c.PVOutput.APIKey,
		Endpoint: c.PVOutput.Endpoint,
	}
}
