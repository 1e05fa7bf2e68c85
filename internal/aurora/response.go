package aurora

// Response is one decoded response payload. A response only exists as the
// result of decoding wire bytes against a pending request; the concrete
// type mirrors the request variant that produced it.
type Response interface {
	response()
}

// StateResponse answers StateRequest.
type StateResponse struct {
	Transmission TransmissionState
	Global       GlobalState
	Inverter     InverterState
	DcDc1        DcDcState
	DcDc2        DcDcState
	Alarm        byte // raw alarm code, not enumerated here
}

func (StateResponse) response() {}

// PartNumberResponse answers PartNumberRequest. All six payload bytes are
// opaque identifier characters.
type PartNumberResponse struct {
	Value [6]byte
}

func (PartNumberResponse) response() {}

func (r PartNumberResponse) String() string { return string(r.Value[:]) }

// VersionResponse answers VersionRequest with four raw parameter bytes.
type VersionResponse struct {
	Transmission TransmissionState
	Global       GlobalState
	Par1         byte
	Par2         byte
	Par3         byte
	Par4         byte
}

func (VersionResponse) response() {}

// MeasureResponse answers MeasureRequest. Type is carried over from the
// request since the wire payload does not repeat it.
type MeasureResponse struct {
	Transmission TransmissionState
	Global       GlobalState
	Type         MeasurementType
	Value        float32
}

func (MeasureResponse) response() {}

// SerialNumberResponse answers SerialNumberRequest. All six payload bytes
// are opaque identifier characters.
type SerialNumberResponse struct {
	Value [6]byte
}

func (SerialNumberResponse) response() {}

func (r SerialNumberResponse) String() string { return string(r.Value[:]) }

// ManufactureDateResponse answers ManufactureDateRequest. Week and year
// are the two-character fields as transmitted.
type ManufactureDateResponse struct {
	Transmission TransmissionState
	Global       GlobalState
	Week         [2]byte
	Year         [2]byte
}

func (ManufactureDateResponse) response() {}

// CumulativeEnergyResponse answers CumulativeEnergyRequest. Duration is
// carried over from the request.
type CumulativeEnergyResponse struct {
	Transmission TransmissionState
	Global       GlobalState
	Duration     CumulativeDuration
	Value        uint32 // Wh
}

func (CumulativeEnergyResponse) response() {}
