// Package meter is the operation facade (spec §4.G): atomic, high-level
// operations — connect, short/full read, batched OBIS reads, authenticate,
// write, sync time, load profile, end session — composed from the lower
// internal/* packages. Every operation owns the port for its lifetime and
// releases it on all exit paths.
package meter

import (
	"time"

	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/profile"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

// ConnectionType selects the physical link kind, which drives the §4.D
// baud-probe sequence.
type ConnectionType = serialport.ConnectionType

const (
	Optical = serialport.Optical
	Auto    = serialport.Auto
	Other   = serialport.Other
)

// ConnectionParams are the immutable-per-operation parameters of spec §3.
type ConnectionParams struct {
	PortName       string
	ConnectionType ConnectionType
	ConfiguredBaud int // 0 = auto
	ReadDeadline   time.Duration
	Address        string
	Password       string
}

// Identity is the meter identification produced by the handshake.
type Identity = iec21.Identity

// ObisItem is one parsed OBIS data item.
type ObisItem = iec21.ObisItem

// ProfileRecord is one load-profile record.
type ProfileRecord = profile.Record

// ConnectionStatus is the read-only state mirror exposed to observers
// (spec §5: "session-state fields are read-only mirrors for observers").
type ConnectionStatus struct {
	Connected         bool
	InProgrammingMode bool
	NegotiatedBaud    int
	PortName          string
}
