package meter

import (
	"github.com/edas-mass/iec62056-driver/internal/session"
)

// Connect probes and ACKs Mode 0, leaves the port open, and notes the
// negotiated baud; it clears any prior state first. On success the port
// stays open — Connect is the one operation allowed to hand off an open
// port (spec §7).
func (s *Session) Connect(params ConnectionParams) (Identity, error) {
	if err := s.acquire(); err != nil {
		return Identity{}, err
	}
	defer s.release()

	s.mu.Lock()
	priorPort := s.port
	s.clearLocked()
	s.mu.Unlock()
	if priorPort != nil {
		s.teardown(priorPort)
	}

	port, ident, baud, err := s.handshakeAndAck(params, session.ModeFull)
	if err != nil {
		return Identity{}, err
	}

	s.mu.Lock()
	s.publishConnectedLocked(port, params, ident, baud, false)
	s.mu.Unlock()

	s.sink.Success("meter.connect", ident.Manufacturer+" "+ident.Model)
	return ident, nil
}

// Disconnect sends a break, releases the port, and clears state. Idempotent
// — calling it with no live port is a no-op.
func (s *Session) Disconnect() error {
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
