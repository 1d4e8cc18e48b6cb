package meter

import (
	"time"

	"github.com/edas-mass/iec62056-driver/internal/serialport"
	"github.com/edas-mass/iec62056-driver/internal/session"
)

const (
	shortReadBufSize  = 8 * 1024
	shortReadIdle     = 3 * time.Second
	fullReadBufSize   = 128 * 1024
	fullReadIdle      = 5 * time.Second
	obisBatchBufSize  = 128 * 1024
	obisBatchIdle     = 5 * time.Second
)

// ReadShort is atomic: probe, ACK Mode 6, read until ETX, verify BCC, parse
// OBIS, and project the §6 fixed field set. Mode 6 always requires a fresh
// ACK, so unlike ReadFull this never reuses a prior Connect's port.
func (s *Session) ReadShort(params ConnectionParams) (ShortReadData, error) {
	if err := s.acquire(); err != nil {
		return ShortReadData{}, err
	}
	defer s.release()

	port, _, _, err := s.handshakeAndAck(params, session.ModeShort)
	if err != nil {
		return ShortReadData{}, err
	}

	items, tee, err := s.drainAndParse(port, shortReadBufSize, shortReadIdle)
	s.teardown(port)
	if err != nil {
		return ShortReadData{}, err
	}

	return buildShortReadData(items, tee.millis()), nil
}

// ReadFull is atomic: probe, ACK Mode 0, read until ETX, verify BCC, parse
// OBIS, and project the §6 fixed field set. If Connect left a live port at
// a known negotiated baud, ReadFull reuses it — the meter is already
// streaming Mode 0 — skipping the handshake/ACK steps.
func (s *Session) ReadFull(params ConnectionParams) (ShortReadData, error) {
	if err := s.acquire(); err != nil {
		return ShortReadData{}, err
	}
	defer s.release()

	port, reused, err := s.reuseOrHandshake(params, session.ModeFull)
	if err != nil {
		return ShortReadData{}, err
	}

	items, tee, err := s.drainAndParse(port, fullReadBufSize, fullReadIdle)

	if reused {
		// The caller's earlier Connect owns the lifetime of a reused port;
		// ReadFull only tears it down on failure, not on success.
		if err != nil {
			s.teardown(port)
			s.mu.Lock()
			s.clearLocked()
			s.mu.Unlock()
		}
	} else {
		s.teardown(port)
	}
	if err != nil {
		return ShortReadData{}, err
	}

	return buildShortReadData(items, tee.millis()), nil
}

// reuseOrHandshake returns the live connected port if one exists, or else
// runs a fresh handshake+ACK for mode.
func (s *Session) reuseOrHandshake(params ConnectionParams, mode session.Mode) (serialport.Port, bool, error) {
	s.mu.Lock()
	port := s.port
	connected := s.connected
	s.mu.Unlock()

	if connected && port != nil {
		return port, true, nil
	}

	p, _, _, err := s.handshakeAndAck(params, mode)
	return p, false, err
}
