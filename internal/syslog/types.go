package syslog

type LogFacility struct {
	FacilityToCode map[string]uint8
	CodeToFacility map[uint8]string
}

type LogSeverity struct {
	SeverityToCode map[string]uint8
	CodeToSeverity map[uint8]string
}
