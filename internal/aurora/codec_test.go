package aurora

import (
	"bytes"
	"errors"
	"testing"
)

// responseFrame builds an 8-byte response frame around a 6-byte payload.
func responseFrame(t *testing.T, payload []byte) []byte {
	t.Helper()
	if len(payload) != responsePayloadLen {
		t.Fatalf("bad test payload length: %d", len(payload))
	}
	crc := checksum(payload)
	return append(append([]byte{}, payload...), crcLo(crc), crcHi(crc))
}

func TestEncodeMeasureRequestWire(t *testing.T) {
	var c Codec
	frame, err := c.EncodeRequest(2, MeasureRequest{Type: Input1Voltage, Global: true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{2, 59, 23, 1, 0, 0, 0, 0}
	if !bytes.Equal(frame[:8], want) {
		t.Fatalf("frame body mismatch: got=%v want=%v", frame[:8], want)
	}
	crc := checksum(frame[:8])
	if frame[8] != crcLo(crc) || frame[9] != crcHi(crc) {
		t.Fatalf("crc bytes mismatch: got=[%d %d] want=[%d %d]", frame[8], frame[9], crcLo(crc), crcHi(crc))
	}
	if c.Pending() == nil {
		t.Fatalf("encode did not record pending request")
	}
}

func TestEncodeCommandCodesAndPayloads(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		command byte
		payload []byte // bytes 2-7
	}{
		{"state", StateRequest{}, 50, []byte{0, 0, 0, 0, 0, 0}},
		{"part number", PartNumberRequest{}, 52, []byte{0, 0, 0, 0, 0, 0}},
		{"version", VersionRequest{}, 58, []byte{0, 0, 0, 0, 0, 0}},
		{"measure local", MeasureRequest{Type: GridPower}, 59, []byte{3, 0, 0, 0, 0, 0}},
		{"measure global", MeasureRequest{Type: Input1Voltage, Global: true}, 59, []byte{23, 1, 0, 0, 0, 0}},
		{"serial number", SerialNumberRequest{}, 63, []byte{0, 0, 0, 0, 0, 0}},
		{"manufacture date", ManufactureDateRequest{}, 65, []byte{0, 0, 0, 0, 0, 0}},
		{"cumulative weekly", CumulativeEnergyRequest{Duration: DurationWeekly}, 78, []byte{1, 0, 0, 0, 0, 0}},
		{"cumulative total", CumulativeEnergyRequest{Duration: DurationTotal}, 78, []byte{5, 0, 0, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Codec
			frame, err := c.EncodeRequest(7, tc.req)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(frame) != RequestFrameLen {
				t.Fatalf("frame length: got=%d want=%d", len(frame), RequestFrameLen)
			}
			if frame[0] != 7 {
				t.Fatalf("address byte: got=%d want=7", frame[0])
			}
			if frame[1] != tc.command {
				t.Fatalf("command byte: got=%d want=%d", frame[1], tc.command)
			}
			if !bytes.Equal(frame[2:8], tc.payload) {
				t.Fatalf("payload mismatch: got=%v want=%v", frame[2:8], tc.payload)
			}
		})
	}
}

func TestDecodeMeasureResponse(t *testing.T) {
	var c Codec
	if _, err := c.EncodeRequest(2, MeasureRequest{Type: Input1Voltage, Global: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame := responseFrame(t, []byte{6, 6, 0x41, 0x20, 0x00, 0x00})
	resp, n, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != ResponseFrameLen {
		t.Fatalf("consumed: got=%d want=%d", n, ResponseFrameLen)
	}
	m, ok := resp.(MeasureResponse)
	if !ok {
		t.Fatalf("unexpected response type: %T", resp)
	}
	if m.Value != 10.0 {
		t.Fatalf("value: got=%v want=10.0", m.Value)
	}
	if m.Type != Input1Voltage {
		t.Fatalf("measurement type not carried over: got=%v", m.Type)
	}
	if m.Transmission != TransmissionAccepted || m.Global != GlobalRun {
		t.Fatalf("status pair: got trans=%v global=%v", m.Transmission, m.Global)
	}
	if c.Pending() != nil {
		t.Fatalf("pending request not cleared after decode")
	}
}

func TestDecodeShortBufferIsIdempotent(t *testing.T) {
	var c Codec
	if _, err := c.EncodeRequest(2, StateRequest{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame := responseFrame(t, []byte{0, 6, 2, 2, 3, 0})
	for end := 0; end < ResponseFrameLen; end++ {
		resp, n, err := c.Decode(frame[:end])
		if resp != nil || n != 0 || err != nil {
			t.Fatalf("partial buffer (%d bytes): resp=%v n=%d err=%v", end, resp, n, err)
		}
		if c.Pending() == nil {
			t.Fatalf("partial decode cleared pending request")
		}
	}
	resp, n, err := c.Decode(frame)
	if err != nil {
		t.Fatalf("full decode: %v", err)
	}
	if n != ResponseFrameLen || resp == nil {
		t.Fatalf("full decode: resp=%v n=%d", resp, n)
	}
}

func TestDecodeWithoutPendingRequest(t *testing.T) {
	var c Codec
	frame := responseFrame(t, []byte{0, 6, 2, 2, 3, 0})
	_, n, err := c.Decode(frame)
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
	if n != ResponseFrameLen {
		t.Fatalf("desynchronized frame must still be consumed: n=%d", n)
	}
}

func TestEncodeWhileResponseOwed(t *testing.T) {
	var c Codec
	if _, err := c.EncodeRequest(2, StateRequest{}); err != nil {
		t.Fatalf("first encode: %v", err)
	}
	_, err := c.EncodeRequest(2, VersionRequest{})
	if !errors.Is(err, ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending, got %v", err)
	}
}

func TestDecodeCRCMismatchOnAnyFlippedPayloadBit(t *testing.T) {
	base := responseFrame(t, []byte{0, 6, 2, 2, 3, 0})
	for byteIdx := 0; byteIdx < responsePayloadLen; byteIdx++ {
		for bit := 0; bit < 8; bit++ {
			var c Codec
			if _, err := c.EncodeRequest(2, StateRequest{}); err != nil {
				t.Fatalf("encode: %v", err)
			}
			frame := append([]byte{}, base...)
			frame[byteIdx] ^= 1 << bit
			_, n, err := c.Decode(frame)
			if !errors.Is(err, ErrCRCMismatch) {
				t.Fatalf("byte %d bit %d: expected ErrCRCMismatch, got %v", byteIdx, bit, err)
			}
			if n != ResponseFrameLen {
				t.Fatalf("byte %d bit %d: corrupt frame must be discarded whole, n=%d", byteIdx, bit, n)
			}
		}
	}
}

func TestRequestFrameCRCDetectsFlippedBits(t *testing.T) {
	var c Codec
	frame, err := c.EncodeRequest(2, CumulativeEnergyRequest{Duration: DurationDaily})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for byteIdx := 0; byteIdx < 8; byteIdx++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := append([]byte{}, frame...)
			corrupt[byteIdx] ^= 1 << bit
			crc := checksum(corrupt[:8])
			if corrupt[8] == crcLo(crc) && corrupt[9] == crcHi(crc) {
				t.Fatalf("byte %d bit %d: flipped bit not detected by crc", byteIdx, bit)
			}
		}
	}
}

func TestDecodeRoundTripsPerVariant(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		payload []byte
		check   func(t *testing.T, resp Response)
	}{
		{
			"state", StateRequest{}, []byte{0, 6, 2, 2, 3, 0x42},
			func(t *testing.T, resp Response) {
				s, ok := resp.(StateResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if s.Transmission != TransmissionOK || s.Global != GlobalRun {
					t.Fatalf("status pair: %+v", s)
				}
				if s.Inverter != InverterRun || s.DcDc1 != DcDcMPPT || s.DcDc2 != DcDcNotUsed {
					t.Fatalf("device states: %+v", s)
				}
				if s.Alarm != 0x42 {
					t.Fatalf("alarm byte: got=%d want=66", s.Alarm)
				}
			},
		},
		{
			"part number", PartNumberRequest{}, []byte("ABC123"),
			func(t *testing.T, resp Response) {
				p, ok := resp.(PartNumberResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if p.String() != "ABC123" {
					t.Fatalf("part number: got=%q", p.String())
				}
			},
		},
		{
			"version", VersionRequest{}, []byte{0, 6, 'i', 'o', 'n', 'n'},
			func(t *testing.T, resp Response) {
				v, ok := resp.(VersionResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if v.Par1 != 'i' || v.Par2 != 'o' || v.Par3 != 'n' || v.Par4 != 'n' {
					t.Fatalf("parameter bytes: %+v", v)
				}
			},
		},
		{
			"serial number", SerialNumberRequest{}, []byte("654321"),
			func(t *testing.T, resp Response) {
				s, ok := resp.(SerialNumberResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if s.String() != "654321" {
					t.Fatalf("serial number: got=%q", s.String())
				}
			},
		},
		{
			"manufacture date", ManufactureDateRequest{}, []byte{0, 6, '2', '2', '1', '9'},
			func(t *testing.T, resp Response) {
				d, ok := resp.(ManufactureDateResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if string(d.Week[:]) != "22" || string(d.Year[:]) != "19" {
					t.Fatalf("week/year: %+v", d)
				}
			},
		},
		{
			"cumulative energy", CumulativeEnergyRequest{Duration: DurationDaily}, []byte{0, 6, 0x00, 0x01, 0xE2, 0x40},
			func(t *testing.T, resp Response) {
				e, ok := resp.(CumulativeEnergyResponse)
				if !ok {
					t.Fatalf("unexpected type %T", resp)
				}
				if e.Value != 123456 {
					t.Fatalf("energy: got=%d want=123456", e.Value)
				}
				if e.Duration != DurationDaily {
					t.Fatalf("duration not carried over: got=%v", e.Duration)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Codec
			if _, err := c.EncodeRequest(2, tc.req); err != nil {
				t.Fatalf("encode: %v", err)
			}
			resp, n, err := c.Decode(responseFrame(t, tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if n != ResponseFrameLen {
				t.Fatalf("consumed: got=%d", n)
			}
			tc.check(t, resp)
			if c.Pending() != nil {
				t.Fatalf("pending request not cleared")
			}
		})
	}
}

func TestDecodeUnknownStateCodePropagates(t *testing.T) {
	var c Codec
	if _, err := c.EncodeRequest(2, StateRequest{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Inverter state byte 200 is outside the enumerated set.
	_, n, err := c.Decode(responseFrame(t, []byte{0, 6, 200, 2, 3, 0}))
	var sce *StateCodeError
	if !errors.As(err, &sce) {
		t.Fatalf("expected StateCodeError, got %v", err)
	}
	if sce.Domain != "inverter" || sce.Code != 200 {
		t.Fatalf("error detail: %+v", sce)
	}
	if n != ResponseFrameLen {
		t.Fatalf("frame with bad state code must still be consumed, n=%d", n)
	}
	if c.Pending() != nil {
		t.Fatalf("pending request must be cleared by the consumed frame")
	}
}
