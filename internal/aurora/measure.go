package aurora

import "fmt"

// MeasurementType identifies one DSP quantity the inverter can report
// through a Measure request. Codes are the one-byte identifiers from the
// Aurora communication protocol, range 1-63.
type MeasurementType byte

const (
	GridVoltage             MeasurementType = 1
	GridCurrent             MeasurementType = 2
	GridPower               MeasurementType = 3
	Frequency               MeasurementType = 4
	Vbulk                   MeasurementType = 5
	IleakDc                 MeasurementType = 6
	IleakInverter           MeasurementType = 7
	Pin1                    MeasurementType = 8
	Pin2                    MeasurementType = 9
	InverterTemperature     MeasurementType = 21
	BoosterTemperature      MeasurementType = 22
	Input1Voltage           MeasurementType = 23
	Input1Current           MeasurementType = 25
	Input2Voltage           MeasurementType = 26
	Input2Current           MeasurementType = 27
	GridVoltageDc           MeasurementType = 28
	GridFrequencyDc         MeasurementType = 29
	IsolationResistance     MeasurementType = 30
	VbulkDc                 MeasurementType = 31
	AverageGridVoltage      MeasurementType = 32
	VbulkMid                MeasurementType = 33
	PeakPower               MeasurementType = 34
	PeakPowerToday          MeasurementType = 35
	GridVoltageNeutral      MeasurementType = 36
	WindGeneratorFrequency  MeasurementType = 37
	GridVoltageNeutralPhase MeasurementType = 38
	GridCurrentPhaseR       MeasurementType = 39
	GridCurrentPhaseS       MeasurementType = 40
	GridCurrentPhaseT       MeasurementType = 41
	FrequencyPhaseR         MeasurementType = 42
	FrequencyPhaseS         MeasurementType = 43
	FrequencyPhaseT         MeasurementType = 44
	VbulkPos                MeasurementType = 45
	VbulkNeg                MeasurementType = 46
	SupervisorTemperature   MeasurementType = 47
	AlimTemperature         MeasurementType = 48
	HeatSinkTemperature     MeasurementType = 49
	Temperature1            MeasurementType = 50
	Temperature2            MeasurementType = 51
	Temperature3            MeasurementType = 52
	FanSpeed1               MeasurementType = 53
	FanSpeed2               MeasurementType = 54
	FanSpeed3               MeasurementType = 55
	FanSpeed4               MeasurementType = 56
	FanSpeed5               MeasurementType = 57
	PowerSaturationLimit    MeasurementType = 58
	ReferenceRingBulk       MeasurementType = 59
	VpanelMicro             MeasurementType = 60
	GridVoltagePhaseR       MeasurementType = 61
	GridVoltagePhaseS       MeasurementType = 62
	GridVoltagePhaseT       MeasurementType = 63
)

var measurementNames = map[MeasurementType]string{
	GridVoltage:             "grid voltage",
	GridCurrent:             "grid current",
	GridPower:               "grid power",
	Frequency:               "frequency",
	Vbulk:                   "vbulk",
	IleakDc:                 "ileak dc",
	IleakInverter:           "ileak inverter",
	Pin1:                    "pin 1",
	Pin2:                    "pin 2",
	InverterTemperature:     "inverter temperature",
	BoosterTemperature:      "booster temperature",
	Input1Voltage:           "input 1 voltage",
	Input1Current:           "input 1 current",
	Input2Voltage:           "input 2 voltage",
	Input2Current:           "input 2 current",
	GridVoltageDc:           "grid voltage (dc side)",
	GridFrequencyDc:         "grid frequency (dc side)",
	IsolationResistance:     "isolation resistance",
	VbulkDc:                 "vbulk (dc side)",
	AverageGridVoltage:      "average grid voltage",
	VbulkMid:                "vbulk mid",
	PeakPower:               "peak power",
	PeakPowerToday:          "peak power today",
	GridVoltageNeutral:      "grid voltage neutral",
	WindGeneratorFrequency:  "wind generator frequency",
	GridVoltageNeutralPhase: "grid voltage neutral-phase",
	GridCurrentPhaseR:       "grid current phase r",
	GridCurrentPhaseS:       "grid current phase s",
	GridCurrentPhaseT:       "grid current phase t",
	FrequencyPhaseR:         "frequency phase r",
	FrequencyPhaseS:         "frequency phase s",
	FrequencyPhaseT:         "frequency phase t",
	VbulkPos:                "vbulk+",
	VbulkNeg:                "vbulk-",
	SupervisorTemperature:   "supervisor temperature",
	AlimTemperature:         "alim temperature",
	HeatSinkTemperature:     "heat sink temperature",
	Temperature1:            "temperature 1",
	Temperature2:            "temperature 2",
	Temperature3:            "temperature 3",
	FanSpeed1:               "fan speed 1",
	FanSpeed2:               "fan speed 2",
	FanSpeed3:               "fan speed 3",
	FanSpeed4:               "fan speed 4",
	FanSpeed5:               "fan speed 5",
	PowerSaturationLimit:    "power saturation limit",
	ReferenceRingBulk:       "reference ring bulk",
	VpanelMicro:             "vpanel micro",
	GridVoltagePhaseR:       "grid voltage phase r",
	GridVoltagePhaseS:       "grid voltage phase s",
	GridVoltagePhaseT:       "grid voltage phase t",
}

// Valid reports whether m is an assigned measurement code.
func (m MeasurementType) Valid() bool {
	_, ok := measurementNames[m]
	return ok
}

func (m MeasurementType) String() string {
	if name, ok := measurementNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MeasurementType(%d)", byte(m))
}
