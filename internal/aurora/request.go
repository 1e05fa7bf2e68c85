package aurora

// Command codes, byte 1 of a request frame.
const (
	cmdState            byte = 50
	cmdPartNumber       byte = 52
	cmdVersion          byte = 58
	cmdMeasure          byte = 59
	cmdSerialNumber     byte = 63
	cmdManufactureDate  byte = 65
	cmdCumulativeEnergy byte = 78
)

// Request is one inverter query. The implementations below are the fixed
// set of protocol commands; a request carries no identity beyond its
// variant and is immutable once constructed.
type Request interface {
	command() byte
	// fillPayload writes the variant payload into bytes 2-7 of a request
	// frame. The slice is pre-zeroed; variants without payload leave it.
	fillPayload(p []byte)
}

// StateRequest asks for the current device state summary.
type StateRequest struct{}

func (StateRequest) command() byte     { return cmdState }
func (StateRequest) fillPayload([]byte) {}

// PartNumberRequest asks for the 6-character part number.
type PartNumberRequest struct{}

func (PartNumberRequest) command() byte     { return cmdPartNumber }
func (PartNumberRequest) fillPayload([]byte) {}

// VersionRequest asks for the firmware/hardware parameter bytes.
type VersionRequest struct{}

func (VersionRequest) command() byte     { return cmdVersion }
func (VersionRequest) fillPayload([]byte) {}

// MeasureRequest asks for one instantaneous DSP measurement. Global
// selects the global (master) value on multi-module units.
type MeasureRequest struct {
	Type   MeasurementType
	Global bool
}

func (MeasureRequest) command() byte { return cmdMeasure }

func (r MeasureRequest) fillPayload(p []byte) {
	p[0] = byte(r.Type)
	if r.Global {
		p[1] = 1
	}
}

// SerialNumberRequest asks for the 6-character serial number.
type SerialNumberRequest struct{}

func (SerialNumberRequest) command() byte     { return cmdSerialNumber }
func (SerialNumberRequest) fillPayload([]byte) {}

// ManufactureDateRequest asks for the week/year of manufacture.
type ManufactureDateRequest struct{}

func (ManufactureDateRequest) command() byte     { return cmdManufactureDate }
func (ManufactureDateRequest) fillPayload([]byte) {}

// CumulativeEnergyRequest asks for accumulated energy over Duration.
type CumulativeEnergyRequest struct {
	Duration CumulativeDuration
}

func (CumulativeEnergyRequest) command() byte { return cmdCumulativeEnergy }

func (r CumulativeEnergyRequest) fillPayload(p []byte) {
	p[0] = byte(r.Duration)
}
