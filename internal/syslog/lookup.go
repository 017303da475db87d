package syslog

import (
	"fmt"
	"sync"
)

const (
	FacilityMax uint8 = 23
	SeverityMax uint8 = 7
)

// Initialize maps for both facility and severity
var facilityMu sync.RWMutex
var logFacility = LogFacility{
	FacilityToCode: map[string]uint8{
		"kern":     0,
		"user":     1,
		"mail":     2,
		"daemon":   3,
		"auth":     4,
		"syslog":   5,
		"lpr":      6,
		"news":     7,
		"uucp":     8,
		"cron":     9,
		"authpriv": 10,
		"ftp":      11,
		"local0":   16,
		"local1":   17,
		"local2":   18,
		"local3":   19,
		"local4":   20,
		"local5":   21,
		"local6":   22,
		"local7":   23,
	},
	CodeToFacility: make(map[uint8]string),
}
var severityMu sync.RWMutex
var logSeverity = LogSeverity{
	SeverityToCode: map[string]uint8{
		"emerg":   0,
		"alert":   1,
		"crit":    2,
		"err":     3,
		"warning": 4,
		"notice":  5,
		"info":    6,
		"debug":   7,
	},
	CodeToSeverity: make(map[uint8]string),
}

// Initialize reverse lookup maps
func InitBidiMaps() {
	facilityMu.Lock()
	defer facilityMu.Unlock()

	for facility, code := range logFacility.FacilityToCode {
		logFacility.CodeToFacility[code] = facility
	}

	severityMu.Lock()
	defer severityMu.Unlock()

	for severity, code := range logSeverity.SeverityToCode {
		logSeverity.CodeToSeverity[code] = severity
	}
}

// Convert facility string to numeric code
func FacilityToCode(facility string) (code uint8, err error) {
	facilityMu.RLock()
	defer facilityMu.RUnlock()

	code, exists := logFacility.FacilityToCode[facility]
	if !exists {
		err = fmt.Errorf("unknown facility name: %s", facility)
	}
	return
}

// Convert severity string to numeric code
func SeverityToCode(severity string) (code uint8, err error) {
	severityMu.RLock()
	defer severityMu.RUnlock()

	code, exists := logSeverity.SeverityToCode[severity]
	if !exists {
		err = fmt.Errorf("unknown severity name: %s", severity)
	}
	return
}

// Convert facility code to string
func CodeToFacility(code uint8) (facility string, err error) {
	facilityMu.RLock()
	defer facilityMu.RUnlock()

	facility, exists := logFacility.CodeToFacility[code]
	if !exists {
		err = fmt.Errorf("unknown facility code: %d", code)
	}
	return
}

// Convert severity code to string
func CodeToSeverity(code uint8) (severity string, err error) {
	severityMu.RLock()
	defer severityMu.RUnlock()

	severity, exists := logSeverity.CodeToSeverity[code]
	if !exists {
		err = fmt.Errorf("unknown severity code: %d", code)
	}
	return
}
