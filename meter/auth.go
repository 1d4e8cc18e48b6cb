package meter

import (
	"fmt"

	"github.com/edas-mass/iec62056-driver/internal/auth"
	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/session"
)

const p0ReadWindow = session.HandshakeLineWait

// Authenticate is atomic Mode 1: probe, ACK, opportunistically read a P0
// challenge, and run the auth sub-protocol. On success the port is
// retained with InProgrammingMode set; on any failure it is released.
func (s *Session) Authenticate(password string, params ConnectionParams) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := auth.ValidatePassword(password); err != nil {
		return err
	}

	port, ident, baud, err := s.handshakeAndAck(params, session.ModeProgramming)
	if err != nil {
		return err
	}

	p0 := session.ReadOpportunistic(port, p0ReadWindow)

	outcome, _, authErr := auth.Run(port, password, p0, s.sink)
	if authErr != nil {
		s.teardown(port)
		return authErr
	}
	if outcome != auth.OutcomeAuthenticated {
		s.teardown(port)
		return fmt.Errorf("meter: authenticate: %w", errs.ErrProtocolError)
	}

	s.mu.Lock()
	s.publishConnectedLocked(port, params, ident, baud, true)
	s.mu.Unlock()

	s.sink.Success("meter.authenticate", "programming mode entered")
	return nil
}

// WriteObis requires InProgrammingMode. It sends W2, sleeps briefly, and
// reads one byte: ACK is success, NAK is WriteRejected, anything else is a
// ProtocolError.
func (s *Session) WriteObis(code, value string) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	port := s.port
	programming := s.inProgrammingMode
	s.mu.Unlock()

	if !programming || port == nil {
		return fmt.Errorf("meter: write_obis: %w", errs.ErrNotConnected)
	}

	return writeObisOnPort(port, code, value, s.sink)
}

// EndSession sends a break, releases the port, and clears the programming
// flag.
func (s *Session) EndSession() error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	port := s.port
	s.clearLocked()
	s.mu.Unlock()

	if port == nil {
		return nil
	}
	return s.teardown(port)
}
