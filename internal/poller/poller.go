// Package poller turns the single-request/single-response session into a
// continuous, rate-limited, timeout-bounded stream of derived readings.
package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"auroractl/internal/aurora"
)

// ErrTimeout terminates a run whose tick produced no result within the
// configured window (interval times multiplier).
var ErrTimeout = errors.New("poller: tick timed out")

// Caller issues one protocol request and returns its decoded response.
// *session.Session satisfies it; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, req aurora.Request) (aurora.Response, error)
}

// Reading is one derived measurement pair, emitted once per successful
// tick in tick order.
type Reading struct {
	Energy  uint32  // cumulative daily energy, Wh
	Voltage float32 // input 1 voltage, V
	At      time.Time
}

// Config tunes tick pacing.
type Config struct {
	// Interval spaces tick starts once the warm-up budget is spent.
	Interval time.Duration
	// TimeoutMultiplier bounds each tick at Interval * TimeoutMultiplier.
	TimeoutMultiplier int
	// WarmupTicks run back-to-back before throttling begins.
	WarmupTicks int
}

func (c Config) WithDefaults() Config {
	if c.TimeoutMultiplier <= 0 {
		c.TimeoutMultiplier = 4
	}
	if c.WarmupTicks < 0 {
		c.WarmupTicks = 0
	}
	return c
}

func (c Config) validate() error {
	if c.Interval <= 0 {
		return errors.New("poller: interval must be > 0")
	}
	return nil
}

// tickState tracks the fixed per-tick request sequence.
type tickState int

const (
	stateIdle tickState = iota
	stateRequestingEnergy
	stateRequestingVoltage
	stateEmit
	stateFailed
)

func (s tickState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRequestingEnergy:
		return "requesting-energy"
	case stateRequestingVoltage:
		return "requesting-voltage"
	case stateEmit:
		return "emit"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("tickState(%d)", int(s))
	}
}

// Poller drives the fixed energy-then-voltage request sequence against
// one session. One poller per connection; restarting after a failure
// means a new connection and a new poller.
type Poller struct {
	cfg      Config
	caller   Caller
	throttle *throttle
	log      zerolog.Logger
}

func New(cfg Config, caller Caller, log zerolog.Logger) (*Poller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, errors.New("poller: caller required")
	}
	return &Poller{
		cfg:      cfg,
		caller:   caller,
		throttle: newThrottle(cfg.Interval, cfg.WarmupTicks),
		log:      log,
	}, nil
}

// Run executes ticks until ctx is cancelled or a tick fails, sending
// readings on out in tick order. Every failure is terminal: transport
// errors, protocol errors and timeouts all end the stream without retry.
// Context cancellation is clean shutdown and returns nil.
func (p *Poller) Run(ctx context.Context, out chan<- Reading) error {
	for tick := uint64(0); ; tick++ {
		if err := p.throttle.wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		reading, err := p.tickOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Error().Err(err).Uint64("tick", tick).Msg("tick failed")
			return err
		}

		p.log.Debug().
			Uint64("tick", tick).
			Uint32("energy_wh", reading.Energy).
			Float32("voltage", reading.Voltage).
			Msg("tick complete")

		select {
		case out <- reading:
		case <-ctx.Done():
			return nil
		}
	}
}

// tickOnce runs one pass of the tick state machine under the tick
// timeout. Both calls must succeed within the window for anything to be
// emitted; there is no partial result.
func (p *Poller) tickOnce(ctx context.Context) (Reading, error) {
	timeout := p.cfg.Interval * time.Duration(p.cfg.TimeoutMultiplier)
	tickCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		state  = stateRequestingEnergy
		energy aurora.CumulativeEnergyResponse
		volt   aurora.MeasureResponse
	)
	for {
		p.log.Trace().Stringer("state", state).Msg("tick state")
		switch state {
		case stateRequestingEnergy:
			resp, err := p.caller.Call(tickCtx, aurora.CumulativeEnergyRequest{Duration: aurora.DurationDaily})
			if err != nil {
				return Reading{}, p.tickErr(ctx, err, timeout)
			}
			e, ok := resp.(aurora.CumulativeEnergyResponse)
			if !ok {
				return Reading{}, fmt.Errorf("%w: %T answering cumulative energy", aurora.ErrUnexpectedResponse, resp)
			}
			energy = e
			state = stateRequestingVoltage

		case stateRequestingVoltage:
			resp, err := p.caller.Call(tickCtx, aurora.MeasureRequest{Type: aurora.Input1Voltage, Global: true})
			if err != nil {
				return Reading{}, p.tickErr(ctx, err, timeout)
			}
			m, ok := resp.(aurora.MeasureResponse)
			if !ok {
				return Reading{}, fmt.Errorf("%w: %T answering measure", aurora.ErrUnexpectedResponse, resp)
			}
			volt = m
			state = stateEmit

		case stateEmit:
			return Reading{Energy: energy.Value, Voltage: volt.Value, At: time.Now()}, nil
		}
	}
}

// tickErr maps a tick-deadline failure to ErrTimeout. Parent cancellation
// passes through so Run can treat it as shutdown.
func (p *Poller) tickErr(parent context.Context, err error, timeout time.Duration) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w (no response within %s)", ErrTimeout, timeout)
	}
	return err
}
