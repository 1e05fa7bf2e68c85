// Package session binds the aurora codec to one byte-stream connection
// and exposes the protocol as a request/response call interface with at
// most one outstanding request.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"auroractl/internal/aurora"
)

// Session owns one connection, its codec and its read buffer. It is
// single-owner: Call must not be invoked concurrently, which is what
// keeps the pending-request slot free of races without locks.
type Session struct {
	conn   io.ReadWriteCloser
	device byte
	codec  aurora.Codec
	buf    []byte
}

// New wraps an established connection. device is the protocol address
// every request from this session is sent to.
func New(conn io.ReadWriteCloser, device byte) *Session {
	return &Session{
		conn:   conn,
		device: device,
		buf:    make([]byte, 0, 4*aurora.ResponseFrameLen),
	}
}

// Device returns the protocol address this session talks to.
func (s *Session) Device() byte { return s.device }

// Call writes one encoded request and blocks until the matching response
// frame has been decoded or the transport fails. Failures are surfaced as
// is; the session never retries. The context deadline is applied to the
// connection when it supports deadlines (net.Conn does, a serial port
// bounds reads through its own configured timeout instead).
func (s *Session) Call(ctx context.Context, req aurora.Request) (aurora.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.applyDeadline(ctx); err != nil {
		return nil, fmt.Errorf("session: set deadline: %w", err)
	}

	frame, err := s.codec.EncodeRequest(s.device, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.conn.Write(frame); err != nil {
		// The request may or may not have reached the device; the owed
		// response will never be read, so the slot is dropped with it.
		s.codec.Reset()
		return nil, fmt.Errorf("session: write: %w", s.mapDeadline(ctx, err))
	}

	var rd [aurora.ResponseFrameLen]byte
	for {
		resp, n, derr := s.codec.Decode(s.buf)
		if n > 0 {
			s.buf = append(s.buf[:0], s.buf[n:]...)
		}
		if derr != nil {
			return nil, derr
		}
		if resp != nil {
			return resp, nil
		}

		n, rerr := s.conn.Read(rd[:])
		if n > 0 {
			s.buf = append(s.buf, rd[:n]...)
		}
		if rerr != nil {
			s.codec.Reset()
			return nil, fmt.Errorf("session: read: %w", s.mapDeadline(ctx, rerr))
		}
	}
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) applyDeadline(ctx context.Context) error {
	d, ok := s.conn.(interface{ SetDeadline(time.Time) error })
	if !ok {
		return nil
	}
	if t, ok := ctx.Deadline(); ok {
		return d.SetDeadline(t)
	}
	return d.SetDeadline(time.Time{})
}

// mapDeadline converts a deadline-triggered transport error back into the
// context error that caused it, so callers see context.DeadlineExceeded
// instead of a connection-flavored timeout.
func (s *Session) mapDeadline(ctx context.Context, err error) error {
	if !errors.Is(err, os.ErrDeadlineExceeded) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// The connection deadline can fire a beat before the context timer.
	if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
		return context.DeadlineExceeded
	}
	return err
}
