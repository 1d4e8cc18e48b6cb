package session

import (
	"fmt"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/errs"
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/internal/iec21"
	"github.com/edas-mass/iec62056-driver/internal/serialport"
)

// Opener opens a named serial port at a given baud. Production code passes
// serialport.Open; tests inject a Fake-backed opener.
type Opener func(name string, baud int) (serialport.Port, error)

// Handshake runs the §4.D baud-probe loop: for each candidate baud it opens
// the port, sends the request, waits PostRequestDelay, and reads for an
// identification line within HandshakeLineWait. The first attempt that
// yields a parsable identification wins and its port is returned open;
// every other opened port is closed before returning.
func Handshake(open Opener, params Params, sink events.Sink) (serialport.Port, iec21.Identity, int, error) {
	bauds := ResolveInitialBauds(params.ConnectionType, params.ConfiguredBaud)

	var openFailed bool
	for _, baud := range bauds {
		port, err := open(params.PortName, baud)
		if err != nil {
			openFailed = true
			if sink != nil {
				sink.Warn("session.open_failed", fmt.Sprintf("open %s at %d baud: %v", params.PortName, baud, err))
			}
			continue
		}

		ident, ok := probeOnce(port, params, sink)
		if ok {
			return port, ident, baud, nil
		}
		port.Close()
	}

	if openFailed {
		return nil, iec21.Identity{}, 0, fmt.Errorf("session: handshake on %s: %w", params.PortName, errs.ErrPortOpenFailed)
	}
	return nil, iec21.Identity{}, 0, fmt.Errorf("session: handshake on %s: %w", params.PortName, errs.ErrNoResponse)
}

func probeOnce(port serialport.Port, params Params, sink events.Sink) (iec21.Identity, bool) {
	req := iec21.BuildRequest(params.Address)
	if sink != nil {
		sink.TxBytes("session.request", req)
	}
	if err := port.WriteAll(req); err != nil {
		return iec21.Identity{}, false
	}

	sleepFn(PostRequestDelay)

	line, found := readLine(port, HandshakeLineWait)
	if !found || len(line) == 0 {
		return iec21.Identity{}, false
	}
	if sink != nil {
		sink.RxBytes("session.identification", len(line))
	}

	ident, ok := iec21.ParseIdentification(string(line))
	if !ok {
		if sink != nil {
			sink.Warn("session.ident_parse_error", string(line))
		}
		return iec21.Identity{}, false
	}
	return ident, true
}

// sleepFn is overridable in tests.
var sleepFn = time.Sleep

// AckMode sends the mode-selection ACK and, if the target baud differs from
// the port's current baud, reconfigures the port after PostAckDelay.
func AckMode(port serialport.Port, mode Mode, initialBaud, targetBaud int, targetBaudChar byte, sink events.Sink) error {
	ack := iec21.BuildAck(byte(mode), targetBaudChar)
	if sink != nil {
		sink.TxBytes("session.ack", ack)
	}
	if err := port.WriteAll(ack); err != nil {
		return fmt.Errorf("session: write mode ack: %w", errs.ErrIoError)
	}

	sleepFn(PostAckDelay)

	if targetBaud != initialBaud {
		if err := port.SetBaud(targetBaud); err != nil {
			return fmt.Errorf("session: switch baud to %d: %w", targetBaud, errs.ErrIoError)
		}
		if sink != nil {
			sink.Info("session.baud_switch", fmt.Sprintf("%d -> %d", initialBaud, targetBaud))
		}
	}
	return nil
}

// Break sends the canonical session terminator: BREAK frame, flush, sleep
// PostBreakDelay, close the port. It is the universal teardown path on both
// success and failure; errors are best-effort (the port is closed
// regardless) and returned only for logging.
func Break(port serialport.Port, sink events.Sink) error {
	frame := iec21.BuildBreak()
	if sink != nil {
		sink.TxBytes("session.break", frame)
	}
	writeErr := port.WriteAll(frame)
	flushErr := port.Flush()
	sleepFn(PostBreakDelay)
	closeErr := port.Close()

	if writeErr != nil {
		return fmt.Errorf("session: break write: %w", errs.ErrIoError)
	}
	if flushErr != nil {
		return fmt.Errorf("session: break flush: %w", errs.ErrIoError)
	}
	if closeErr != nil {
		return fmt.Errorf("session: break close: %w", errs.ErrIoError)
	}
	return nil
}
