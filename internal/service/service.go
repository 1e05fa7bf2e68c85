// Package service assembles the configured transport, poller and upload
// client into one supervised run loop.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"

	"auroractl/internal/config"
	"auroractl/internal/poller"
	"auroractl/internal/pvoutput"
	"auroractl/internal/session"
)

// Service owns the process lifecycle: dial, poll, publish, and when
// reconnects are enabled, tear down and start over after a failure.
type Service struct {
	cfg    config.Config
	log    zerolog.Logger
	upload *pvoutput.Client // nil when uploads are disabled
}

func New(cfg config.Config, log zerolog.Logger) (*Service, error) {
	s := &Service{cfg: cfg, log: log}
	if cfg.PVOutput.Enabled() {
		client, err := pvoutput.New(cfg.PVOutputClientConfig())
		if err != nil {
			return nil, err
		}
		s.upload = client
	}
	return s, nil
}

// Run blocks until ctx is cancelled or a poll run fails with reconnects
// disabled. With reconnects enabled every failure is logged and retried
// after an exponentially growing, jittered delay.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Reconnect.Enabled {
		return s.runOnce(ctx)
	}

	retry := &backoff.Backoff{
		Min:    s.cfg.Reconnect.MinDelay.Std(),
		Max:    s.cfg.Reconnect.MaxDelay.Std(),
		Factor: 2,
		Jitter: true,
	}
	for {
		started := time.Now()
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}
		// A run that survived a while earns a fresh backoff.
		if time.Since(started) > 2*s.cfg.Poll.Interval.Std() {
			retry.Reset()
		}
		delay := retry.Duration()
		s.log.Warn().Err(err).Dur("retry_in", delay).Msg("poll run failed, reconnecting")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// runOnce dials one connection and polls it until failure or shutdown.
func (s *Service) runOnce(ctx context.Context) error {
	sess, err := session.Dial(s.cfg.SessionTransport(), s.cfg.Inverter.Address)
	if err != nil {
		return fmt.Errorf("service: dial: %w", err)
	}
	defer sess.Close()
	s.log.Info().Uint8("device", s.cfg.Inverter.Address).Msg("connected")

	p, err := poller.New(s.cfg.PollerConfig(), sess, s.log)
	if err != nil {
		return err
	}

	readings := make(chan poller.Reading)
	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx, readings) }()

	for {
		select {
		case r := <-readings:
			s.publish(ctx, r)
		case err := <-runErr:
			return err
		}
	}
}

// publish logs one reading and uploads it when an upload client is
// configured. Upload failures are warnings, never fatal.
func (s *Service) publish(ctx context.Context, r poller.Reading) {
	s.log.Info().
		Uint32("energy_wh", r.Energy).
		Float32("voltage", r.Voltage).
		Time("at", r.At).
		Msg("reading")

	if s.upload == nil {
		return
	}
	upCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	status := pvoutput.Status{EnergyWh: r.Energy, Voltage: r.Voltage, At: r.At}
	if err := s.upload.AddStatus(upCtx, status); err != nil {
		s.log.Warn().Err(err).Msg("upload failed")
	}
}
