package aurora

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	// RequestFrameLen is the fixed request frame size on the wire.
	RequestFrameLen = 10
	// ResponseFrameLen is the fixed response frame size on the wire.
	ResponseFrameLen = 8

	responsePayloadLen = 6
)

var (
	ErrRequestPending     = errors.New("aurora: request already pending")
	ErrCRCMismatch        = errors.New("aurora: crc mismatch")
	ErrUnexpectedResponse = errors.New("aurora: response without pending request")
)

// Codec encodes requests into wire frames and decodes response frames.
//
// A response frame carries no indication of which command it answers; the
// codec keeps the pending request between EncodeRequest and Decode so the
// opaque payload bytes can be interpreted. A codec therefore belongs to
// exactly one connection and one calling goroutine at a time.
type Codec struct {
	pending Request
}

// EncodeRequest builds the 10-byte frame for req addressed to addr and
// records req as the pending request. Encoding while a response is still
// owed fails with ErrRequestPending: issuing a second request before the
// first answer is a protocol violation, not a recoverable race.
func (c *Codec) EncodeRequest(addr byte, req Request) ([]byte, error) {
	if c.pending != nil {
		return nil, ErrRequestPending
	}
	frame := make([]byte, RequestFrameLen)
	frame[0] = addr
	frame[1] = req.command()
	req.fillPayload(frame[2:8])
	crc := checksum(frame[:8])
	frame[8] = crcLo(crc)
	frame[9] = crcHi(crc)
	c.pending = req
	return frame, nil
}

// Decode consumes at most one response frame from buf and reports how
// many bytes it consumed. With fewer than 8 bytes buffered it consumes
// nothing and returns (nil, 0, nil); callers append more bytes and call
// again. Once 8 bytes are available exactly 8 are consumed, whether the
// frame decodes or not: a bad frame is discarded, never retried.
func (c *Codec) Decode(buf []byte) (Response, int, error) {
	if len(buf) < ResponseFrameLen {
		return nil, 0, nil
	}
	payload := buf[:responsePayloadLen]
	crc := checksum(payload)
	if buf[6] != crcLo(crc) || buf[7] != crcHi(crc) {
		return nil, ResponseFrameLen, ErrCRCMismatch
	}
	if c.pending == nil {
		return nil, ResponseFrameLen, ErrUnexpectedResponse
	}
	pending := c.pending
	c.pending = nil
	resp, err := decodePayload(pending, payload)
	if err != nil {
		return nil, ResponseFrameLen, err
	}
	return resp, ResponseFrameLen, nil
}

// Pending returns the request currently awaiting a response, if any.
func (c *Codec) Pending() Request { return c.pending }

// Reset drops any pending request. Used when the underlying connection is
// abandoned and the owed response will never arrive.
func (c *Codec) Reset() { c.pending = nil }

// decodePayload interprets the 6 payload bytes according to the request
// variant they answer. Layouts are fixed per variant; see the protocol
// tables in the package tests for the byte-level shapes.
func decodePayload(req Request, p []byte) (Response, error) {
	switch r := req.(type) {
	case StateRequest:
		trans, global, err := decodeStatusPair(p)
		if err != nil {
			return nil, err
		}
		inverter, err := DecodeInverterState(p[2])
		if err != nil {
			return nil, err
		}
		dc1, err := DecodeDcDcState(p[3])
		if err != nil {
			return nil, err
		}
		dc2, err := DecodeDcDcState(p[4])
		if err != nil {
			return nil, err
		}
		return StateResponse{
			Transmission: trans,
			Global:       global,
			Inverter:     inverter,
			DcDc1:        dc1,
			DcDc2:        dc2,
			Alarm:        p[5],
		}, nil

	case PartNumberRequest:
		var v [6]byte
		copy(v[:], p)
		return PartNumberResponse{Value: v}, nil

	case VersionRequest:
		trans, global, err := decodeStatusPair(p)
		if err != nil {
			return nil, err
		}
		return VersionResponse{
			Transmission: trans,
			Global:       global,
			Par1:         p[2],
			Par2:         p[3],
			Par3:         p[4],
			Par4:         p[5],
		}, nil

	case MeasureRequest:
		trans, global, err := decodeStatusPair(p)
		if err != nil {
			return nil, err
		}
		return MeasureResponse{
			Transmission: trans,
			Global:       global,
			Type:         r.Type,
			Value:        math.Float32frombits(binary.BigEndian.Uint32(p[2:6])),
		}, nil

	case SerialNumberRequest:
		var v [6]byte
		copy(v[:], p)
		return SerialNumberResponse{Value: v}, nil

	case ManufactureDateRequest:
		trans, global, err := decodeStatusPair(p)
		if err != nil {
			return nil, err
		}
		return ManufactureDateResponse{
			Transmission: trans,
			Global:       global,
			Week:         [2]byte{p[2], p[3]},
			Year:         [2]byte{p[4], p[5]},
		}, nil

	case CumulativeEnergyRequest:
		trans, global, err := decodeStatusPair(p)
		if err != nil {
			return nil, err
		}
		return CumulativeEnergyResponse{
			Transmission: trans,
			Global:       global,
			Duration:     r.Duration,
			Value:        binary.BigEndian.Uint32(p[2:6]),
		}, nil

	default:
		// Request is a sealed interface; this is unreachable.
		return nil, ErrUnexpectedResponse
	}
}

// decodeStatusPair decodes the transmission/global state bytes leading
// every stateful response payload.
func decodeStatusPair(p []byte) (TransmissionState, GlobalState, error) {
	trans, err := DecodeTransmissionState(p[0])
	if err != nil {
		return 0, 0, err
	}
	global, err := DecodeGlobalState(p[1])
	if err != nil {
		return 0, 0, err
	}
	return trans, global, nil
}
