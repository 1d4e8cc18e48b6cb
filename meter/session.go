package meter

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
	"github.com/edas-mass/iec62056-driver/internal/session"
)

// Session is an explicit session handle (spec §9 Design Notes: "for
// library use, expose an explicit session handle so tests can instantiate
// independent sessions without process-wide state"). The zero value is not
// usable; construct with New.
type Session struct {
	mu sync.Mutex // guards the fields below; never held across blocking I/O
	busy int32    // atomic Busy-rejection token (CAS, no queueing)

	port              serialport.Port
	params            ConnectionParams
	identity          Identity
	connected         bool
	inProgrammingMode bool
	negotiatedBaud    int

	sink   events.Sink
	opener session.Opener // overridable in tests
}

// New constructs an empty Session. sink may be nil, in which case the no-op
// events.Null sink is used.
func New(sink events.Sink) *Session {
	if sink == nil {
		sink = events.Null{}
	}
	return &Session{
		sink:   sink,
		opener: serialport.Open,
	}
}

// ListPorts enumerates serial ports known to the OS.
func ListPorts() ([]string, error) {
	return serialport.ListPorts()
}

// acquire claims the busy token or fails immediately with ErrBusy — the
// facade rejects concurrent operations rather than queueing them (spec §5).
func (s *Session) acquire() error {
	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		return fmt.Errorf("meter: %w", errs.ErrBusy)
	}
	return nil
}

func (s *Session) release() {
	atomic.StoreInt32(&s.busy, 0)
}

// GetConnectionStatus returns a read-only snapshot of session state.
func (s *Session) GetConnectionStatus() ConnectionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConnectionStatus{
		Connected:         s.connected,
		InProgrammingMode: s.inProgrammingMode,
		NegotiatedBaud:    s.negotiatedBaud,
		PortName:          s.params.PortName,
	}
}

// GetMeterIdentity returns the identity captured by the last successful
// connect/authenticate, or the zero Identity if none.
func (s *Session) GetMeterIdentity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// clearLocked resets all session state. Caller must hold s.mu.
func (s *Session) clearLocked() {
	s.port = nil
	s.identity = Identity{}
	s.connected = false
	s.inProgrammingMode = false
	s.negotiatedBaud = 0
}

// publishConnectedLocked records a freshly opened port as the live session
// state. Caller must hold s.mu.
func (s *Session) publishConnectedLocked(port serialport.Port, params ConnectionParams, ident Identity, baud int, programming bool) {
	s.port = port
	s.params = params
	s.identity = ident
	s.connected = true
	s.inProgrammingMode = programming
	s.negotiatedBaud = baud
}

