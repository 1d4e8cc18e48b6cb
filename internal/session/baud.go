// Package session implements the IEC 62056-21 handshake state machine
// (spec §4.D): baud-probing, identification parse, mode ACK, baud
// renegotiation, and the break+release teardown path.
package session

import (
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

// ResolveInitialBauds returns the ordered sequence of bit rates to probe
// for the given connection type and configured baud, per the §4.D table.
func ResolveInitialBauds(connType serialport.ConnectionType, configuredBaud int) []int {
	switch connType {
	case serialport.Optical:
		return []int{300}
	case serialport.Auto:
		if configuredBaud == 0 {
			return []int{9600, 300}
		}
		return []int{configuredBaud}
	default: // Other (serial/rs485/rs232/other)
		if configuredBaud == 0 {
			return []int{9600, 300, 19200}
		}
		return []int{configuredBaud}
	}
}

// ResolveTargetBaud implements the §4.D target-baud resolution: optical or
// auto-configured connections switch to the meter's own max rate; anything
// else keeps the caller's configured baud. baudChar is the inverse mapping,
// falling back to the identity's own baud char when target isn't in the
// baud-char table.
func ResolveTargetBaud(connType serialport.ConnectionType, configuredBaud, maxBaudRate int, identityBaudChar byte) (target int, baudChar byte) {
	if connType == serialport.Optical || configuredBaud == 0 {
		target = maxBaudRate
	} else {
		target = configuredBaud
	}

	if c, ok := iec21.CharForBaud(target); ok {
		return target, c
	}
	return target, identityBaudChar
}
