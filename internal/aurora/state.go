package aurora

import "fmt"

// StateCodeError reports a status byte outside the enumerated code set of
// one state domain. The raw byte is preserved so vendor-specific codes can
// be diagnosed instead of silently mapped to a default.
type StateCodeError struct {
	Domain string
	Code   byte
}

func (e *StateCodeError) Error() string {
	return fmt.Sprintf("aurora: unknown %s state code %d", e.Domain, e.Code)
}

// TransmissionState is the per-response link status reported in the first
// payload byte of most responses.
type TransmissionState byte

const (
	TransmissionOK               TransmissionState = 0
	TransmissionAccepted         TransmissionState = 6
	TransmissionNotImplemented   TransmissionState = 51
	TransmissionVariableMissing  TransmissionState = 52
	TransmissionValueOutOfRange  TransmissionState = 53
	TransmissionEEPROMFault      TransmissionState = 54
	TransmissionNotServiceMode   TransmissionState = 55
	TransmissionMicroUnreachable TransmissionState = 56
	TransmissionNotExecuted      TransmissionState = 57
	TransmissionRetry            TransmissionState = 58
)

var transmissionStateNames = map[TransmissionState]string{
	TransmissionOK:               "ok",
	TransmissionAccepted:         "accepted",
	TransmissionNotImplemented:   "command not implemented",
	TransmissionVariableMissing:  "variable does not exist",
	TransmissionValueOutOfRange:  "value out of range",
	TransmissionEEPROMFault:      "eeprom not accessible",
	TransmissionNotServiceMode:   "not in service mode",
	TransmissionMicroUnreachable: "cannot reach internal micro",
	TransmissionNotExecuted:      "command not executed",
	TransmissionRetry:            "variable not available, retry",
}

// DecodeTransmissionState maps a raw status byte to a TransmissionState.
func DecodeTransmissionState(code byte) (TransmissionState, error) {
	s := TransmissionState(code)
	if _, ok := transmissionStateNames[s]; !ok {
		return 0, &StateCodeError{Domain: "transmission", Code: code}
	}
	return s, nil
}

func (s TransmissionState) String() string {
	if name, ok := transmissionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TransmissionState(%d)", byte(s))
}

// GlobalState is the overall operating state of the inverter.
type GlobalState byte

const (
	GlobalSendingParameters GlobalState = 0
	GlobalWaitSunGrid       GlobalState = 1
	GlobalCheckingGrid      GlobalState = 2
	GlobalMeasuringRiso     GlobalState = 3
	GlobalDcDcStart         GlobalState = 4
	GlobalInverterStart     GlobalState = 5
	GlobalRun               GlobalState = 6
	GlobalRecovery          GlobalState = 7
	GlobalPause             GlobalState = 8
	GlobalGroundFault       GlobalState = 9
	GlobalOTHFault          GlobalState = 10
	GlobalAddressSetting    GlobalState = 11
	GlobalSelfTest          GlobalState = 12
	GlobalSelfTestFail      GlobalState = 13
	GlobalSensorTestRiso    GlobalState = 14
	GlobalLeakFault         GlobalState = 15
	GlobalWaitManualReset   GlobalState = 16
	GlobalInternalErrorE026 GlobalState = 17
	GlobalInternalErrorE027 GlobalState = 18
	GlobalInternalErrorE028 GlobalState = 19
	GlobalInternalErrorE029 GlobalState = 20
	GlobalInternalErrorE030 GlobalState = 21
	GlobalSendingWindTable  GlobalState = 22
	GlobalFailedSendingTbl  GlobalState = 23
	GlobalUTHFault          GlobalState = 24
	GlobalRemoteOff         GlobalState = 25
	GlobalInterlockFail     GlobalState = 26
	GlobalExecutingAutotest GlobalState = 27
	GlobalWaitingSun        GlobalState = 30
	GlobalTemperatureFault  GlobalState = 31
	GlobalFanStuck          GlobalState = 32
	GlobalIntComFault       GlobalState = 33
	GlobalSlaveInsertion    GlobalState = 34
	GlobalDCSwitchOpen      GlobalState = 35
	GlobalTRASSwitchOpen    GlobalState = 36
	GlobalMasterExclusion   GlobalState = 37
	GlobalAutoExclusion     GlobalState = 38
	GlobalErasingIntEEPROM  GlobalState = 98
	GlobalErasingExtEEPROM  GlobalState = 99
	GlobalCountingEEPROM    GlobalState = 100
	GlobalFreeze            GlobalState = 101
)

var globalStateNames = map[GlobalState]string{
	GlobalSendingParameters: "sending parameters",
	GlobalWaitSunGrid:       "wait sun/grid",
	GlobalCheckingGrid:      "checking grid",
	GlobalMeasuringRiso:     "measuring riso",
	GlobalDcDcStart:         "dc/dc start",
	GlobalInverterStart:     "inverter start",
	GlobalRun:               "run",
	GlobalRecovery:          "recovery",
	GlobalPause:             "pause",
	GlobalGroundFault:       "ground fault",
	GlobalOTHFault:          "oth fault",
	GlobalAddressSetting:    "address setting",
	GlobalSelfTest:          "self test",
	GlobalSelfTestFail:      "self test fail",
	GlobalSensorTestRiso:    "sensor test + measuring riso",
	GlobalLeakFault:         "leak fault",
	GlobalWaitManualReset:   "waiting for manual reset",
	GlobalInternalErrorE026: "internal error e026",
	GlobalInternalErrorE027: "internal error e027",
	GlobalInternalErrorE028: "internal error e028",
	GlobalInternalErrorE029: "internal error e029",
	GlobalInternalErrorE030: "internal error e030",
	GlobalSendingWindTable:  "sending wind table",
	GlobalFailedSendingTbl:  "failed sending wind table",
	GlobalUTHFault:          "uth fault",
	GlobalRemoteOff:         "remote off",
	GlobalInterlockFail:     "interlock fail",
	GlobalExecutingAutotest: "executing autotest",
	GlobalWaitingSun:        "waiting sun",
	GlobalTemperatureFault:  "temperature fault",
	GlobalFanStuck:          "fan stuck",
	GlobalIntComFault:       "internal communication fault",
	GlobalSlaveInsertion:    "slave insertion",
	GlobalDCSwitchOpen:      "dc switch open",
	GlobalTRASSwitchOpen:    "tras switch open",
	GlobalMasterExclusion:   "master exclusion",
	GlobalAutoExclusion:     "auto exclusion",
	GlobalErasingIntEEPROM:  "erasing internal eeprom",
	GlobalErasingExtEEPROM:  "erasing external eeprom",
	GlobalCountingEEPROM:    "counting eeprom",
	GlobalFreeze:            "freeze",
}

// DecodeGlobalState maps a raw status byte to a GlobalState.
func DecodeGlobalState(code byte) (GlobalState, error) {
	s := GlobalState(code)
	if _, ok := globalStateNames[s]; !ok {
		return 0, &StateCodeError{Domain: "global", Code: code}
	}
	return s, nil
}

func (s GlobalState) String() string {
	if name, ok := globalStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GlobalState(%d)", byte(s))
}

// InverterState is the operating state of the DC/AC stage.
type InverterState byte

const (
	InverterStandBy       InverterState = 0
	InverterCheckingGrid  InverterState = 1
	InverterRun           InverterState = 2
	InverterBulkOV        InverterState = 3
	InverterOutOC         InverterState = 4
	InverterIGBTSat       InverterState = 5
	InverterBulkUV        InverterState = 6
	InverterDegaussError  InverterState = 7
	InverterNoParameters  InverterState = 8
	InverterBulkLow       InverterState = 9
	InverterGridOV        InverterState = 10
	InverterCommError     InverterState = 11
	InverterDegaussing    InverterState = 12
	InverterStartingUp    InverterState = 13
	InverterBulkCapFail   InverterState = 14
	InverterLeakFail      InverterState = 15
	InverterDcDcFail      InverterState = 16
	InverterIldFault      InverterState = 17
	InverterGridFail      InverterState = 18
	InverterDenSwitchOpen InverterState = 19
	InverterJboxFail      InverterState = 20
)

var inverterStateNames = map[InverterState]string{
	InverterStandBy:       "stand by",
	InverterCheckingGrid:  "checking grid",
	InverterRun:           "run",
	InverterBulkOV:        "bulk overvoltage",
	InverterOutOC:         "output overcurrent",
	InverterIGBTSat:       "igbt saturation",
	InverterBulkUV:        "bulk undervoltage",
	InverterDegaussError:  "degauss error",
	InverterNoParameters:  "no parameters",
	InverterBulkLow:       "bulk low",
	InverterGridOV:        "grid overvoltage",
	InverterCommError:     "communication error",
	InverterDegaussing:    "degaussing",
	InverterStartingUp:    "starting up",
	InverterBulkCapFail:   "bulk capacitor fail",
	InverterLeakFail:      "leak fail",
	InverterDcDcFail:      "dc/dc fail",
	InverterIldFault:      "ild fault",
	InverterGridFail:      "grid fail",
	InverterDenSwitchOpen: "den switch open",
	InverterJboxFail:      "jbox fail",
}

// DecodeInverterState maps a raw status byte to an InverterState.
func DecodeInverterState(code byte) (InverterState, error) {
	s := InverterState(code)
	if _, ok := inverterStateNames[s]; !ok {
		return 0, &StateCodeError{Domain: "inverter", Code: code}
	}
	return s, nil
}

func (s InverterState) String() string {
	if name, ok := inverterStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InverterState(%d)", byte(s))
}

// DcDcState is the operating state of one DC/DC channel.
type DcDcState byte

const (
	DcDcOff          DcDcState = 0
	DcDcRampStart    DcDcState = 1
	DcDcMPPT         DcDcState = 2
	DcDcNotUsed      DcDcState = 3
	DcDcInputOC      DcDcState = 4
	DcDcInputUV      DcDcState = 5
	DcDcInputOV      DcDcState = 6
	DcDcInputLow     DcDcState = 7
	DcDcNoParameters DcDcState = 8
	DcDcBulkOV       DcDcState = 9
	DcDcCommError    DcDcState = 10
	DcDcRampFail     DcDcState = 11
	DcDcInternalErr  DcDcState = 12
	DcDcInputModeErr DcDcState = 13
	DcDcGroundFault  DcDcState = 14
	DcDcInverterFail DcDcState = 15
	DcDcIGBTSat      DcDcState = 16
	DcDcILeakFail    DcDcState = 17
	DcDcGridFail     DcDcState = 18
	DcDcCommFault    DcDcState = 19
)

var dcDcStateNames = map[DcDcState]string{
	DcDcOff:          "off",
	DcDcRampStart:    "ramp start",
	DcDcMPPT:         "mppt",
	DcDcNotUsed:      "not used",
	DcDcInputOC:      "input overcurrent",
	DcDcInputUV:      "input undervoltage",
	DcDcInputOV:      "input overvoltage",
	DcDcInputLow:     "input low",
	DcDcNoParameters: "no parameters",
	DcDcBulkOV:       "bulk overvoltage",
	DcDcCommError:    "communication error",
	DcDcRampFail:     "ramp fail",
	DcDcInternalErr:  "internal error",
	DcDcInputModeErr: "input mode error",
	DcDcGroundFault:  "ground fault",
	DcDcInverterFail: "inverter fail",
	DcDcIGBTSat:      "igbt saturation",
	DcDcILeakFail:    "ileak fail",
	DcDcGridFail:     "grid fail",
	DcDcCommFault:    "communication fault",
}

// DecodeDcDcState maps a raw status byte to a DcDcState.
func DecodeDcDcState(code byte) (DcDcState, error) {
	s := DcDcState(code)
	if _, ok := dcDcStateNames[s]; !ok {
		return 0, &StateCodeError{Domain: "dc/dc", Code: code}
	}
	return s, nil
}

func (s DcDcState) String() string {
	if name, ok := dcDcStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DcDcState(%d)", byte(s))
}
