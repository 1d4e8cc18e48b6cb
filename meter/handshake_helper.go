package meter

import (
	"fmt"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
	"github.com/edas-mass/iec62056-driver/internal/session"
)

func toSessionParams(p ConnectionParams) session.Params {
	return session.Params{
		PortName:       p.PortName,
		ConnectionType: p.ConnectionType,
		ConfiguredBaud: p.ConfiguredBaud,
		ReadDeadline:   p.ReadDeadline,
		Address:        p.Address,
		Password:       p.Password,
	}
}

// handshakeAndAck runs the §4.D probe + mode-ACK sequence and returns an
// open port at the negotiated baud. If the handshake fails, session.Handshake
// has already closed any port it opened; if the mode ACK fails, the port is
// torn down via the break+release path before returning.
func (s *Session) handshakeAndAck(p ConnectionParams, mode session.Mode) (serialport.Port, iec21.Identity, int, error) {
	sp := toSessionParams(p)

	port, ident, initialBaud, err := session.Handshake(s.opener, sp, s.sink)
	if err != nil {
		return nil, iec21.Identity{}, 0, err
	}

	targetBaud, targetChar := session.ResolveTargetBaud(p.ConnectionType, p.ConfiguredBaud, ident.MaxBaudRate, ident.BaudChar)

	if err := session.AckMode(port, mode, initialBaud, targetBaud, targetChar, s.sink); err != nil {
		session.Break(port, s.sink)
		return nil, iec21.Identity{}, 0, err
	}

	return port, ident, targetBaud, nil
}

// teardown runs the canonical break+release path. It does not touch session
// state; callers clear it with clearLocked where needed. Used on every
// non-success exit and on normal disconnect/end-session.
func (s *Session) teardown(port serialport.Port) error {
	if port == nil {
		return nil
	}
	err := session.Break(port, s.sink)
	if err != nil {
		return fmt.Errorf("meter: teardown: %w", errs.ErrIoError)
	}
	return nil
}
