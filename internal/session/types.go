package session

import (
	"time"

	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

// Mode selects the IEC 62056-21 protocol mode ACK'd after the handshake.
type Mode byte

const (
	ModeFull        Mode = '0'
	ModeProgramming Mode = '1'
	ModeShort       Mode = '6'
)

// Timing constants from §4.D / §4.E. Named so tests can reference them
// instead of repeating magic numbers.
const (
	PostRequestDelay  = 500 * time.Millisecond
	PostAckDelay      = 300 * time.Millisecond
	PostBreakDelay    = 100 * time.Millisecond
	HandshakeLineWait = 2 * time.Second // per-attempt deadline waiting for the ID line
)

// Params mirrors the caller-supplied connection parameters of spec §3.
type Params struct {
	PortName       string
	ConnectionType serialport.ConnectionType
	ConfiguredBaud int // 0 = auto
	ReadDeadline   time.Duration
	Address        string
	Password       string
}
