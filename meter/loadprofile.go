package meter

import (
	"fmt"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/profile"
	"github.com/edas-mass/iec62056-driver/internal/session"
)

const (
	loadProfileBufSize = 1 << 20 // ~1 MiB: profile registers can span many days
	loadProfileIdle    = 15 * time.Second
)

// ReadLoadProfile is atomic Mode 1: probe, ACK, opportunistically drain
// whatever the meter sends unprompted (some MASS meters emit a P0 seed even
// when no write follows; it is discarded here since load profile reads
// never authenticate), send the P.nn request, and drain until idle. rng is
// resolved via ResolveDateRange before being embedded in the request; an
// empty rng asks for the meter's entire buffer.
func (s *Session) ReadLoadProfile(n int, rng string, params ConnectionParams) ([]ProfileRecord, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	port, _, _, err := s.handshakeAndAck(params, session.ModeProgramming)
	if err != nil {
		return nil, err
	}
	defer s.teardown(port)

	session.ReadOpportunistic(port, p0ReadWindow)

	resolved, err := ResolveDateRange(rng, time.Now())
	if err != nil {
		return nil, err
	}

	req := iec21.BuildLoadProfile(n, resolved)
	s.sink.TxBytes("meter.read_load_profile", req)
	if err := port.WriteAll(req); err != nil {
		return nil, fmt.Errorf("meter: read_load_profile P.%02d: %w", n, errs.ErrIoError)
	}

	cfg := iec21.ReadConfig{
		BufferSize:   loadProfileBufSize,
		IdleTimeout:  loadProfileIdle,
		ReadInterval: 100 * time.Millisecond,
	}
	result, err := iec21.ReadUntilETX(port, cfg, iec21.SinkAdapter{Sink: s.sink, Code: "meter.read_load_profile"})
	if err != nil {
		return nil, fmt.Errorf("meter: read_load_profile P.%02d: %w", n, errs.ErrIoError)
	}
	if !result.FoundETX {
		return nil, fmt.Errorf("meter: read_load_profile P.%02d: %w", n, errs.ErrReadTimeout)
	}

	body, frameErr := iec21.SliceDataFrame(result.Data)
	if frameErr != nil && frameErr != iec21.ErrBCCMismatch {
		return nil, fmt.Errorf("meter: read_load_profile P.%02d: %w", n, errs.ErrIdentParseError)
	}
	if frameErr == iec21.ErrBCCMismatch {
		s.sink.Warn("meter.bcc_mismatch", "load profile surfaced despite BCC mismatch")
	}

	return profile.Parse(string(body)), nil
}
