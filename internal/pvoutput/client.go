// Package pvoutput uploads readings to the PVOutput Add Status service.
package pvoutput

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the production Add Status URL.
const DefaultEndpoint = "https://pvoutput.org/service/r2/addstatus.jsp"

// ErrRejected marks a non-2xx answer from the service. The wrapped text
// carries the status line and the start of the body.
var ErrRejected = errors.New("pvoutput: upload rejected")

// Config identifies the target system. SystemID and APIKey come from the
// PVOutput account settings.
type Config struct {
	SystemID string
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

func (c Config) WithDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

func (c Config) validate() error {
	if c.SystemID == "" {
		return errors.New("pvoutput: system id required")
	}
	if c.APIKey == "" {
		return errors.New("pvoutput: api key required")
	}
	return nil
}

// Status is one upload: energy generated so far today and a voltage
// sample, both stamped with local time.
type Status struct {
	EnergyWh uint32
	Voltage  float32
	At       time.Time
}

// Client posts statuses to one PVOutput system.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// AddStatus uploads one status. A non-2xx answer is an error but never
// fatal to the caller's poll loop; retrying is the caller's decision.
func (c *Client) AddStatus(ctx context.Context, s Status) error {
	form := url.Values{}
	form.Set("d", s.At.Format("20060102"))
	form.Set("t", s.At.Format("15:04"))
	form.Set("v1", strconv.FormatUint(uint64(s.EnergyWh), 10))
	form.Set("v6", strconv.FormatFloat(float64(s.Voltage), 'f', 1, 32))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("pvoutput: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Pvoutput-Apikey", c.cfg.APIKey)
	req.Header.Set("X-Pvoutput-SystemId", c.cfg.SystemID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("pvoutput: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%w: %s: %s", ErrRejected, resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
